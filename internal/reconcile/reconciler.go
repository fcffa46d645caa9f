package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"researchconnect/internal/domain"
	"researchconnect/internal/editor"
	"researchconnect/internal/logger"
)

// QuestionStore is the slice of the remote API the save needs for questions.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// AnswerStore is the slice of the remote API the save needs for answers.
type AnswerStore interface {
	CreateAnswer(ctx context.Context, a domain.Answer) (domain.Answer, error)
	DeleteAnswer(ctx context.Context, id string) error
}

// Draft is what the reconciler consumes from a questionnaire in edit.
// *editor.Coordinator implements it.
type Draft interface {
	QuestionnaireID() string
	NodeIDs() []string
	Snapshot(localID string) (editor.Snapshot, bool)
	OriginalQuestionIDs() []string
	OriginalAnswerIDs() []string
}

// Reconciler replaces a questionnaire's remote question/answer set with the
// contents of a draft. Deletes run before creates, and question creates run
// before answer creates so that follow-up references can be remapped from
// local ids to server-issued ids. Calls are sequential; a failure part-way
// leaves the remote store in a mixed state and the draft untouched, so the
// user can retry.
type Reconciler struct {
	questions QuestionStore
	answers   AnswerStore
	log       *logger.Logger

	mu     sync.Mutex
	saving bool
}

// NewReconciler wires the reconciler to its remote collaborators.
func NewReconciler(questions QuestionStore, answers AnswerStore, log *logger.Logger) *Reconciler {
	return &Reconciler{questions: questions, answers: answers, log: log}
}

// Save validates the draft and replaces the questionnaire's remote records.
// A second Save while one is running returns domain.ErrSaveInFlight.
func (r *Reconciler) Save(ctx context.Context, draft Draft) error {
	r.mu.Lock()
	if r.saving {
		r.mu.Unlock()
		return domain.ErrSaveInFlight
	}
	r.saving = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.saving = false
		r.mu.Unlock()
	}()

	snapshots, err := collectSnapshots(draft)
	if err != nil {
		return err
	}
	if err := validateSnapshots(snapshots); err != nil {
		return err
	}

	questionnaireID := draft.QuestionnaireID()
	r.log.Info("saving questionnaire",
		"questionnaireId", questionnaireID,
		"questions", len(snapshots),
		"deletions", len(draft.OriginalQuestionIDs())+len(draft.OriginalAnswerIDs()),
	)

	for _, id := range draft.OriginalAnswerIDs() {
		if err := r.answers.DeleteAnswer(ctx, id); err != nil {
			r.log.Error("delete answer failed", "answerId", id, "error", err)
			return fmt.Errorf("saving questionnaire: %w", err)
		}
	}
	for _, id := range draft.OriginalQuestionIDs() {
		if err := r.questions.DeleteQuestion(ctx, id); err != nil {
			r.log.Error("delete question failed", "questionId", id, "error", err)
			return fmt.Errorf("saving questionnaire: %w", err)
		}
	}

	// All questions are created before any answer so every follow-up
	// reference, including forward ones, resolves through serverIDs.
	serverIDs := make(map[string]string, len(snapshots))
	for _, s := range snapshots {
		created, err := r.questions.CreateQuestion(ctx, domain.Question{
			QuestionnaireID:       questionnaireID,
			Index:                 s.DisplayIndex,
			Text:                  s.Text,
			Description:           s.Description,
			AllowMultipleResponse: s.AllowMultipleResponse,
			AllowOpenResponse:     s.AllowOpenResponse,
			OpenResponseFormat:    s.OpenResponseFormat,
		})
		if err != nil {
			r.log.Error("create question failed", "questionnaireId", questionnaireID, "error", err)
			return fmt.Errorf("saving questionnaire: %w", err)
		}
		serverIDs[s.LocalID] = created.ID
	}

	for _, s := range snapshots {
		for _, a := range s.Answers {
			next := ""
			if a.NextQuestionID != "" {
				next = serverIDs[a.NextQuestionID]
			}
			if _, err := r.answers.CreateAnswer(ctx, domain.Answer{
				QuestionID:     serverIDs[s.LocalID],
				Index:          a.Index,
				Text:           a.Text,
				NextQuestionID: next,
			}); err != nil {
				r.log.Error("create answer failed", "questionId", serverIDs[s.LocalID], "error", err)
				return fmt.Errorf("saving questionnaire: %w", err)
			}
		}
	}

	r.log.Info("questionnaire saved", "questionnaireId", questionnaireID)
	return nil
}

// collectSnapshots orders the draft's snapshots by display index and fails
// fast when any question never reported its data.
func collectSnapshots(draft Draft) ([]editor.Snapshot, error) {
	ids := draft.NodeIDs()
	snapshots := make([]editor.Snapshot, 0, len(ids))
	for _, id := range ids {
		s, ok := draft.Snapshot(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrDraftIncomplete, id)
		}
		snapshots = append(snapshots, s)
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].DisplayIndex < snapshots[j].DisplayIndex
	})
	return snapshots, nil
}
