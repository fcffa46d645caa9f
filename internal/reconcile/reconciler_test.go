package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"researchconnect/internal/domain"
	"researchconnect/internal/editor"
	"researchconnect/internal/logger"
	"researchconnect/internal/reconcile"
)

func TestSaveAbortsOnEmptyTitleBeforeAnyRemoteCall(t *testing.T) {
	draft := editor.NewCoordinator("qn-1")
	node := draft.CreateNode(editor.ModeSingle)
	node.SetDescription("a description")
	// text left empty

	store := newFakeStore()
	rec := reconcile.NewReconciler(store, store, logger.NewNop())

	err := rec.Save(context.Background(), draft)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("validation failure must not reach the remote store, got calls %v", store.calls)
	}
}

func TestSaveValidatesOpenResponseFormat(t *testing.T) {
	valid := validDraft(t, "^[0-9]+$")
	store := newFakeStore()
	rec := reconcile.NewReconciler(store, store, logger.NewNop())
	if err := rec.Save(context.Background(), valid); err != nil {
		t.Fatalf("valid pattern must pass: %v", err)
	}

	invalid := validDraft(t, "(unclosed")
	store = newFakeStore()
	rec = reconcile.NewReconciler(store, store, logger.NewNop())
	err := rec.Save(context.Background(), invalid)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("invalid pattern must abort the save, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", store.calls)
	}
}

func TestSaveDeletesBeforeCreating(t *testing.T) {
	draft := editor.NewCoordinator("qn-1")
	draft.LoadExisting(
		[]domain.Question{{ID: "old-q", Index: 1, Text: "Old", Description: "d"}},
		map[string][]domain.Answer{"old-q": {{ID: "old-a", QuestionID: "old-q", Index: 1, Text: "old answer"}}},
	)
	node := draft.NodeByID("old-q")
	node.SetText("Updated question")
	node.SetDescription("updated description")

	store := newFakeStore()
	rec := reconcile.NewReconciler(store, store, logger.NewNop())
	if err := rec.Save(context.Background(), draft); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	want := []string{"delete answer old-a", "delete question old-q", "create question", "create answer"}
	if len(store.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, store.calls)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q (all: %v)", i, want[i], store.calls[i], store.calls)
		}
	}
}

func TestSaveRemapsForwardFollowUpReferences(t *testing.T) {
	draft := editor.NewCoordinator("qn-1")
	a := draft.CreateNode(editor.ModeMultiple)
	b := draft.CreateNode(editor.ModeSingle)

	a.SetText("Did you see any birds?")
	a.SetDescription("Observation check")
	for pos, text := range []string{"Yes", "No", "Not sure"} {
		a.SetAnswerText(pos, text)
	}
	a.SetFollowUp(0, b.LocalID())

	b.SetText("Which species?")
	b.SetDescription("Free text")

	store := newFakeStore()
	rec := reconcile.NewReconciler(store, store, logger.NewNop())
	if err := rec.Save(context.Background(), draft); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if len(store.createdQuestions) != 2 {
		t.Fatalf("expected 2 created questions, got %d", len(store.createdQuestions))
	}
	secondServerID := store.createdQuestions[1].ID
	if secondServerID == "" || secondServerID == b.LocalID() {
		t.Fatalf("second question must have a server-issued id, got %q", secondServerID)
	}
	if got := store.createdAnswers[0].NextQuestionID; got != secondServerID {
		t.Fatalf("follow-up must be remapped to the server id %q, got %q", secondServerID, got)
	}
}

func TestSaveRejectsConcurrentRuns(t *testing.T) {
	draft := validDraft(t, "")

	store := newFakeStore()
	store.block = make(chan struct{})
	rec := reconcile.NewReconciler(store, store, logger.NewNop())

	firstDone := make(chan error, 1)
	go func() { firstDone <- rec.Save(context.Background(), draft) }()
	<-store.entered

	if err := rec.Save(context.Background(), draft); !errors.Is(err, domain.ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight, got %v", err)
	}

	close(store.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	// With the first save finished a new one is allowed again.
	if err := rec.Save(context.Background(), draft); err != nil {
		t.Fatalf("follow-up save failed: %v", err)
	}
}

func TestSaveFailsFastOnMissingSnapshot(t *testing.T) {
	store := newFakeStore()
	rec := reconcile.NewReconciler(store, store, logger.NewNop())

	err := rec.Save(context.Background(), incompleteDraft{})
	if !errors.Is(err, domain.ErrDraftIncomplete) {
		t.Fatalf("expected ErrDraftIncomplete, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", store.calls)
	}
}

func TestSaveSurfacesRemoteFailure(t *testing.T) {
	draft := validDraft(t, "")

	store := newFakeStore()
	store.failOn = "create question"
	rec := reconcile.NewReconciler(store, store, logger.NewNop())

	if err := rec.Save(context.Background(), draft); err == nil {
		t.Fatalf("expected remote failure to propagate")
	}

	// The draft is untouched; a retry runs the full sequence again.
	store.failOn = ""
	if err := rec.Save(context.Background(), draft); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

// validDraft builds a one-question draft that passes validation, with format
// as the open-response pattern.
func validDraft(t *testing.T, format string) *editor.Coordinator {
	t.Helper()
	draft := editor.NewCoordinator("qn-1")
	node := draft.CreateNode(editor.ModeSingle)
	node.SetText("How many deer did you count?")
	node.SetDescription("Enter a number")
	node.SetOpenResponseFormat(format)
	return draft
}

// fakeStore implements both store interfaces and records every call in order.
type fakeStore struct {
	calls            []string
	createdQuestions []domain.Question
	createdAnswers   []domain.Answer
	nextID           int
	failOn           string

	block   chan struct{}
	entered chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{entered: make(chan struct{}, 16)}
}

func (s *fakeStore) CreateQuestion(_ context.Context, q domain.Question) (domain.Question, error) {
	s.entered <- struct{}{}
	if s.block != nil {
		<-s.block
	}
	if s.failOn == "create question" {
		return domain.Question{}, errors.New("boom")
	}
	s.calls = append(s.calls, "create question")
	s.nextID++
	q.ID = fmt.Sprintf("srv-q%d", s.nextID)
	s.createdQuestions = append(s.createdQuestions, q)
	return q, nil
}

func (s *fakeStore) DeleteQuestion(_ context.Context, id string) error {
	if s.failOn == "delete question" {
		return errors.New("boom")
	}
	s.calls = append(s.calls, "delete question "+id)
	return nil
}

func (s *fakeStore) CreateAnswer(_ context.Context, a domain.Answer) (domain.Answer, error) {
	if s.failOn == "create answer" {
		return domain.Answer{}, errors.New("boom")
	}
	s.calls = append(s.calls, "create answer")
	s.nextID++
	a.ID = fmt.Sprintf("srv-a%d", s.nextID)
	s.createdAnswers = append(s.createdAnswers, a)
	return a, nil
}

func (s *fakeStore) DeleteAnswer(_ context.Context, id string) error {
	if s.failOn == "delete answer" {
		return errors.New("boom")
	}
	s.calls = append(s.calls, "delete answer "+id)
	return nil
}

// incompleteDraft reports a node id without ever having aggregated its data.
type incompleteDraft struct{}

func (incompleteDraft) QuestionnaireID() string                 { return "qn-x" }
func (incompleteDraft) NodeIDs() []string                       { return []string{"ghost"} }
func (incompleteDraft) Snapshot(string) (editor.Snapshot, bool) { return editor.Snapshot{}, false }
func (incompleteDraft) OriginalQuestionIDs() []string           { return nil }
func (incompleteDraft) OriginalAnswerIDs() []string             { return nil }
