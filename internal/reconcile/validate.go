package reconcile

import (
	"regexp"
	"strings"

	"researchconnect/internal/domain"
	"researchconnect/internal/editor"
)

// validateSnapshots is the single validation pass run before any remote
// call. The first violation aborts the whole save.
func validateSnapshots(snapshots []editor.Snapshot) error {
	for _, s := range snapshots {
		if err := validateSnapshot(s); err != nil {
			return err
		}
	}
	return nil
}

func validateSnapshot(s editor.Snapshot) error {
	if strings.TrimSpace(s.Text) == "" {
		return &domain.ValidationError{QuestionIndex: s.DisplayIndex, Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(s.Description) == "" {
		return &domain.ValidationError{QuestionIndex: s.DisplayIndex, Field: "description", Reason: "must not be empty"}
	}
	if s.DisplayIndex < 1 {
		return &domain.ValidationError{QuestionIndex: s.DisplayIndex, Field: "index", Reason: "must be at least 1"}
	}
	for _, a := range s.Answers {
		if strings.TrimSpace(a.Text) == "" {
			return &domain.ValidationError{QuestionIndex: s.DisplayIndex, Field: "answer text", Reason: "must not be empty"}
		}
		if a.Index < 1 {
			return &domain.ValidationError{QuestionIndex: s.DisplayIndex, Field: "answer index", Reason: "must be at least 1"}
		}
	}
	if s.AllowOpenResponse && strings.TrimSpace(s.OpenResponseFormat) != "" {
		if _, err := regexp.Compile(s.OpenResponseFormat); err != nil {
			return &domain.ValidationError{QuestionIndex: s.DisplayIndex, Field: "open response format", Reason: "is not a valid pattern"}
		}
	}
	return nil
}
