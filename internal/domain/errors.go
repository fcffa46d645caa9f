package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an API call is attempted without credentials.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when the session token's expiry has passed.
	ErrSessionExpired = errors.New("session expired, log in again")
	// ErrSaveInFlight rejects a save while another save on the same draft is running.
	ErrSaveInFlight = errors.New("save already in progress")
	// ErrDraftIncomplete indicates a question never reported its data to the draft.
	ErrDraftIncomplete = errors.New("draft has a question with no data")
	// ErrNotFound indicates the remote store has no such record.
	ErrNotFound = errors.New("record not found")
)

// ValidationError describes a user-facing problem with one question of a draft,
// detected before any remote call is made.
type ValidationError struct {
	QuestionIndex int    // display index of the offending question
	Field         string // which field failed
	Reason        string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s %s", e.QuestionIndex, e.Field, e.Reason)
}
