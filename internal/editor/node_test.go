package editor_test

import (
	"testing"

	"researchconnect/internal/editor"
)

func TestSingleResponseCoercion(t *testing.T) {
	node := editor.NewNode(editor.NodeConfig{
		LocalID:           "q1",
		DisplayIndex:      1,
		Mode:              editor.ModeSingle,
		AllowOpenResponse: false,
		Answers: []editor.AnswerOption{
			{ID: "a1", IndexValue: 1, Text: "should be dropped"},
		},
	})

	if !node.AllowOpenResponse() {
		t.Fatalf("single-response question must allow open response")
	}
	if len(node.Answers()) != 0 {
		t.Fatalf("single-response question must have no answers, got %d", len(node.Answers()))
	}

	node.SetAllowOpenResponse(false)
	if !node.AllowOpenResponse() {
		t.Fatalf("open response cannot be disabled on a single-response question")
	}
}

func TestMultipleDefaultsToThreeBlankAnswers(t *testing.T) {
	node := editor.NewNode(editor.NodeConfig{LocalID: "q1", DisplayIndex: 1, Mode: editor.ModeMultiple})

	answers := node.Answers()
	if len(answers) != 3 {
		t.Fatalf("expected 3 default answers, got %d", len(answers))
	}
	for i, a := range answers {
		if a.IndexValue != i+1 {
			t.Fatalf("answer %d: expected index %d, got %d", i, i+1, a.IndexValue)
		}
	}
	letters := node.Letters()
	if letters[0] != "A" || letters[1] != "B" || letters[2] != "C" {
		t.Fatalf("expected letters A B C, got %v", letters)
	}
}

func TestSetAnswerIndexValueResorts(t *testing.T) {
	node := editor.NewNode(editor.NodeConfig{
		LocalID:      "q1",
		DisplayIndex: 1,
		Mode:         editor.ModeMultiple,
		Answers:      []editor.AnswerOption{{ID: "a1", IndexValue: 1, Text: "only"}},
	})

	node.SetAnswerIndexValue(0, 5)

	answers := node.Answers()
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answers))
	}
	if answers[0].IndexValue != 5 {
		t.Fatalf("expected index value 5, got %d", answers[0].IndexValue)
	}
	if letters := node.Letters(); letters[0] != "A" {
		t.Fatalf("expected letter A, got %q", letters[0])
	}
}

func TestReorderKeepsAnswersSorted(t *testing.T) {
	node := editor.NewNode(editor.NodeConfig{
		LocalID:      "q1",
		DisplayIndex: 1,
		Mode:         editor.ModeMultiple,
		Answers: []editor.AnswerOption{
			{ID: "a1", IndexValue: 1, Text: "first"},
			{ID: "a2", IndexValue: 2, Text: "second"},
			{ID: "a3", IndexValue: 3, Text: "third"},
		},
	})

	// Move the first answer past the others.
	node.SetAnswerIndexValue(0, 9)

	answers := node.Answers()
	if answers[0].ID != "a2" || answers[1].ID != "a3" || answers[2].ID != "a1" {
		t.Fatalf("unexpected order: %v %v %v", answers[0].ID, answers[1].ID, answers[2].ID)
	}
	if letters := node.Letters(); letters[0] != "A" || letters[1] != "B" || letters[2] != "C" {
		t.Fatalf("letters must follow sort order, got %v", node.Letters())
	}
}

func TestDuplicateIndexValuesShareALetter(t *testing.T) {
	node := editor.NewNode(editor.NodeConfig{
		LocalID:      "q1",
		DisplayIndex: 1,
		Mode:         editor.ModeMultiple,
		Answers: []editor.AnswerOption{
			{ID: "a1", IndexValue: 1, Text: "x"},
			{ID: "a2", IndexValue: 1, Text: "y"},
			{ID: "a3", IndexValue: 2, Text: "z"},
		},
	})

	letters := node.Letters()
	if letters[0] != "A" || letters[1] != "A" || letters[2] != "B" {
		t.Fatalf("expected A A B, got %v", letters)
	}
}

func TestAddAnswerUsesNextIndexValue(t *testing.T) {
	node := editor.NewNode(editor.NodeConfig{
		LocalID:      "q1",
		DisplayIndex: 1,
		Mode:         editor.ModeMultiple,
		Answers:      []editor.AnswerOption{{ID: "a1", IndexValue: 7, Text: "x"}},
	})

	node.AddAnswer()

	answers := node.Answers()
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if answers[1].IndexValue != 8 {
		t.Fatalf("expected new answer at index 8, got %d", answers[1].IndexValue)
	}
	if answers[1].ID == "" || answers[1].ID == answers[0].ID {
		t.Fatalf("new answer needs a fresh id, got %q", answers[1].ID)
	}
}

func TestToggleFollowUpClosingClearsReference(t *testing.T) {
	node := newLinkedNode(t)

	node.ToggleFollowUp(0) // open
	node.SetFollowUp(0, "q2")
	if node.Answers()[0].FollowUpQuestionID != "q2" {
		t.Fatalf("expected follow-up set")
	}

	node.ToggleFollowUp(0) // close
	if got := node.Answers()[0].FollowUpQuestionID; got != "" {
		t.Fatalf("closing the selector must clear the reference, got %q", got)
	}
}

func TestSetFollowUpRejectsEarlierTargets(t *testing.T) {
	node := newLinkedNode(t)

	node.SetFollowUp(0, "q0") // earlier question
	if got := node.Answers()[0].FollowUpQuestionID; got != "" {
		t.Fatalf("backward reference must be rejected, got %q", got)
	}

	node.SetFollowUp(0, "q1") // self
	if got := node.Answers()[0].FollowUpQuestionID; got != "" {
		t.Fatalf("self reference must be rejected, got %q", got)
	}

	node.SetFollowUp(0, "q2") // later question
	if got := node.Answers()[0].FollowUpQuestionID; got != "q2" {
		t.Fatalf("forward reference must be accepted, got %q", got)
	}
}

func TestRaisingOwnIndexClearsFollowUp(t *testing.T) {
	node := newLinkedNode(t)
	node.SetFollowUp(0, "q2")

	node.SetDisplayIndex(2) // no longer strictly before q2

	if got := node.Answers()[0].FollowUpQuestionID; got != "" {
		t.Fatalf("follow-up must be cleared when the question is no longer earlier, got %q", got)
	}
}

func TestFollowUpCandidatesAreLaterSiblingsAscending(t *testing.T) {
	node := newLinkedNode(t)

	candidates := node.FollowUpCandidates()
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].LocalID != "q2" || candidates[1].LocalID != "q3" {
		t.Fatalf("expected q2 then q3, got %v", candidates)
	}
}

func TestSnapshotEmissionIsDeduplicated(t *testing.T) {
	emitted := 0
	node := editor.NewNode(editor.NodeConfig{
		LocalID:      "q1",
		DisplayIndex: 1,
		Mode:         editor.ModeMultiple,
		OnChange:     func(editor.Snapshot) { emitted++ },
	})

	node.SetText("How often do you visit?")
	if emitted != 1 {
		t.Fatalf("expected 1 emission, got %d", emitted)
	}

	node.SetText("How often do you visit?")
	if emitted != 1 {
		t.Fatalf("setting an equal value must not re-emit, got %d emissions", emitted)
	}

	node.SetText("changed")
	if emitted != 2 {
		t.Fatalf("expected 2 emissions, got %d", emitted)
	}
}

// newLinkedNode returns a multiple-choice node at display index 1 that knows
// siblings q0 (index unreachable backward), q2 and q3.
func newLinkedNode(t *testing.T) *editor.Node {
	t.Helper()
	node := editor.NewNode(editor.NodeConfig{LocalID: "q1", DisplayIndex: 1, Mode: editor.ModeMultiple})
	node.ReconcileSiblings([]editor.SiblingSummary{
		{LocalID: "q0", DisplayIndex: 1, Text: "same index"},
		{LocalID: "q1", DisplayIndex: 1, Text: "self"},
		{LocalID: "q3", DisplayIndex: 3, Text: "third"},
		{LocalID: "q2", DisplayIndex: 2, Text: "second"},
	})
	return node
}
