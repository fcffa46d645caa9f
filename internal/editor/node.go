package editor

import (
	"sort"

	"github.com/google/uuid"
)

// ResponseMode distinguishes open-text questions from choice-based ones.
type ResponseMode string

const (
	// ModeSingle is an open-text question with no answer options.
	ModeSingle ResponseMode = "single"
	// ModeMultiple is a choice-based question, optionally also accepting open text.
	ModeMultiple ResponseMode = "multiple"
)

// AnswerOption is one selectable option of a choice-based question.
// Options are kept sorted ascending by IndexValue at all times; the sort
// order determines the displayed letter.
type AnswerOption struct {
	ID                 string
	IndexValue         int
	Text               string
	FollowUpQuestionID string // local id of a strictly later question, empty when unset
	FollowUpOpen       bool   // whether the follow-up selector is expanded
}

// SiblingSummary is the slice of another node's state a node needs to
// compute and label its follow-up candidates.
type SiblingSummary struct {
	LocalID      string
	DisplayIndex int
	Text         string
}

// NodeConfig seeds a Node. Answers are ignored for ModeSingle; for
// ModeMultiple an empty Answers slice yields three blank options.
type NodeConfig struct {
	LocalID               string
	DisplayIndex          int
	Mode                  ResponseMode
	Text                  string
	Description           string
	AllowMultipleResponse bool
	AllowOpenResponse     bool
	OpenResponseFormat    string
	Answers               []AnswerOption
	OnChange              func(Snapshot)
	NewAnswerID           func() string
}

// Node holds the editable state of one question in a questionnaire draft.
// Every observable change re-emits a full snapshot through OnChange unless
// it is structurally identical to the last emitted one.
type Node struct {
	localID               string
	displayIndex          int
	mode                  ResponseMode
	text                  string
	description           string
	allowMultipleResponse bool
	allowOpenResponse     bool
	openResponseFormat    string
	answers               []AnswerOption
	siblings              []SiblingSummary

	onChange    func(Snapshot)
	newAnswerID func() string
	lastEmitted *Snapshot
}

// NewNode builds a node from cfg, applying the response-mode invariants:
// a single-response question always allows open response and has no options.
func NewNode(cfg NodeConfig) *Node {
	n := &Node{
		localID:               cfg.LocalID,
		displayIndex:          clampIndex(cfg.DisplayIndex),
		mode:                  cfg.Mode,
		text:                  cfg.Text,
		description:           cfg.Description,
		allowMultipleResponse: cfg.AllowMultipleResponse,
		allowOpenResponse:     cfg.AllowOpenResponse,
		openResponseFormat:    cfg.OpenResponseFormat,
		onChange:              cfg.OnChange,
		newAnswerID:           cfg.NewAnswerID,
	}
	if n.newAnswerID == nil {
		n.newAnswerID = uuid.NewString
	}
	switch cfg.Mode {
	case ModeSingle:
		n.allowOpenResponse = true
		n.allowMultipleResponse = false
		n.answers = nil
	default:
		if len(cfg.Answers) == 0 {
			n.answers = defaultAnswers(n.newAnswerID)
		} else {
			n.answers = append([]AnswerOption(nil), cfg.Answers...)
			sortAnswers(n.answers)
		}
	}
	return n
}

func defaultAnswers(newID func() string) []AnswerOption {
	answers := make([]AnswerOption, 0, 3)
	for i := 1; i <= 3; i++ {
		answers = append(answers, AnswerOption{ID: newID(), IndexValue: i})
	}
	return answers
}

func sortAnswers(answers []AnswerOption) {
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].IndexValue < answers[j].IndexValue
	})
}

func clampIndex(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// LocalID returns the client-assigned identifier, stable for the whole edit session.
func (n *Node) LocalID() string { return n.localID }

// DisplayIndex returns the current presentation index.
func (n *Node) DisplayIndex() int { return n.displayIndex }

// Mode returns the response mode the node was created with.
func (n *Node) Mode() ResponseMode { return n.mode }

// Text returns the question text.
func (n *Node) Text() string { return n.text }

// Description returns the question description.
func (n *Node) Description() string { return n.description }

// AllowMultipleResponse reports whether respondents may pick several options.
func (n *Node) AllowMultipleResponse() bool { return n.allowMultipleResponse }

// AllowOpenResponse reports whether the question accepts open text.
func (n *Node) AllowOpenResponse() bool { return n.allowOpenResponse }

// OpenResponseFormat returns the open-response validation pattern.
func (n *Node) OpenResponseFormat() string { return n.openResponseFormat }

// Answers returns a copy of the option list in its current sorted order.
func (n *Node) Answers() []AnswerOption {
	return append([]AnswerOption(nil), n.answers...)
}

// Letters returns the display letter for each answer, positionally matching
// Answers. Options sharing an index value share a letter slot.
func (n *Node) Letters() []string {
	values := make([]int, len(n.answers))
	for i, a := range n.answers {
		values[i] = a.IndexValue
	}
	return lettersFor(values)
}

// SetText updates the question text.
func (n *Node) SetText(text string) {
	n.text = text
	n.emitChange()
}

// SetDescription updates the question description.
func (n *Node) SetDescription(description string) {
	n.description = description
	n.emitChange()
}

// SetOpenResponseFormat updates the open-response validation pattern.
func (n *Node) SetOpenResponseFormat(format string) {
	n.openResponseFormat = format
	n.emitChange()
}

// SetAllowMultipleResponse toggles whether respondents may pick several options.
// Ignored for single-response questions.
func (n *Node) SetAllowMultipleResponse(allow bool) {
	if n.mode == ModeSingle {
		return
	}
	n.allowMultipleResponse = allow
	n.emitChange()
}

// SetAllowOpenResponse toggles open response. Single-response questions are
// inherently open-response, so the flag cannot be cleared for them.
func (n *Node) SetAllowOpenResponse(allow bool) {
	if n.mode == ModeSingle {
		allow = true
	}
	n.allowOpenResponse = allow
	n.emitChange()
}

// SetDisplayIndex coerces the value to at least 1 and reports it upward.
// The coordinator owns ordering among siblings; the node only revalidates
// its own follow-up links against the new relative position.
func (n *Node) SetDisplayIndex(v int) {
	n.displayIndex = clampIndex(v)
	n.revalidateFollowUps()
	n.emitChange()
}

// AddAnswer appends a blank option indexed one past the current maximum.
func (n *Node) AddAnswer() {
	if n.mode == ModeSingle {
		return
	}
	max := 0
	for _, a := range n.answers {
		if a.IndexValue > max {
			max = a.IndexValue
		}
	}
	n.answers = append(n.answers, AnswerOption{ID: n.newAnswerID(), IndexValue: max + 1})
	n.emitChange()
}

// RemoveAnswer removes the option at pos in the current sorted view.
func (n *Node) RemoveAnswer(pos int) {
	if pos < 0 || pos >= len(n.answers) {
		return
	}
	n.answers = append(n.answers[:pos], n.answers[pos+1:]...)
	n.emitChange()
}

// SetAnswerText updates the text of the option at pos.
func (n *Node) SetAnswerText(pos int, text string) {
	if pos < 0 || pos >= len(n.answers) {
		return
	}
	n.answers[pos].Text = text
	n.emitChange()
}

// SetAnswerIndexValue updates the ordering value of the option at pos,
// coerced to at least 1, and immediately re-sorts the option list.
func (n *Node) SetAnswerIndexValue(pos, v int) {
	if pos < 0 || pos >= len(n.answers) {
		return
	}
	n.answers[pos].IndexValue = clampIndex(v)
	sortAnswers(n.answers)
	n.emitChange()
}

// ToggleFollowUp expands the follow-up selector of the option at pos, or
// collapses it and clears the reference if it is already open.
func (n *Node) ToggleFollowUp(pos int) {
	if pos < 0 || pos >= len(n.answers) {
		return
	}
	if n.answers[pos].FollowUpOpen {
		n.answers[pos].FollowUpOpen = false
		n.answers[pos].FollowUpQuestionID = ""
	} else {
		n.answers[pos].FollowUpOpen = true
	}
	n.emitChange()
}

// SetFollowUp links the option at pos to target, or clears the link when
// target is empty. Links to questions that are not strictly later than this
// one are rejected and stored as cleared.
func (n *Node) SetFollowUp(pos int, targetLocalID string) {
	if pos < 0 || pos >= len(n.answers) {
		return
	}
	if targetLocalID != "" && !validFollowUp(n.localID, n.displayIndex, targetLocalID, n.siblings) {
		targetLocalID = ""
	}
	n.answers[pos].FollowUpQuestionID = targetLocalID
	n.emitChange()
}

// ReconcileSiblings installs the latest sibling summaries and clears any
// follow-up reference whose target is no longer a valid candidate.
func (n *Node) ReconcileSiblings(siblings []SiblingSummary) {
	n.siblings = append([]SiblingSummary(nil), siblings...)
	n.revalidateFollowUps()
	n.emitChange()
}

// FollowUpCandidates returns the questions this node's answers may branch
// to: every sibling with a strictly greater display index, ascending.
func (n *Node) FollowUpCandidates() []SiblingSummary {
	return followUpCandidates(n.localID, n.displayIndex, n.siblings)
}

func (n *Node) revalidateFollowUps() {
	for i := range n.answers {
		ref := n.answers[i].FollowUpQuestionID
		if ref == "" {
			continue
		}
		if !validFollowUp(n.localID, n.displayIndex, ref, n.siblings) {
			n.answers[i].FollowUpQuestionID = ""
		}
	}
}

// followUpCandidates is the single source of truth for the forward-only
// invariant: a candidate must be a different question with a strictly
// greater display index.
func followUpCandidates(ownID string, ownIndex int, siblings []SiblingSummary) []SiblingSummary {
	var out []SiblingSummary
	for _, s := range siblings {
		if s.LocalID == ownID || s.DisplayIndex <= ownIndex {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayIndex < out[j].DisplayIndex
	})
	return out
}

func validFollowUp(ownID string, ownIndex int, targetLocalID string, siblings []SiblingSummary) bool {
	for _, s := range followUpCandidates(ownID, ownIndex, siblings) {
		if s.LocalID == targetLocalID {
			return true
		}
	}
	return false
}

func (n *Node) emitChange() {
	snap := n.snapshot()
	if n.lastEmitted != nil && snap.Equal(*n.lastEmitted) {
		return
	}
	n.lastEmitted = &snap
	if n.onChange != nil {
		n.onChange(snap)
	}
}

func (n *Node) snapshot() Snapshot {
	answers := make([]AnswerSnapshot, 0, len(n.answers))
	for _, a := range n.answers {
		answers = append(answers, AnswerSnapshot{
			Index:          a.IndexValue,
			Text:           a.Text,
			NextQuestionID: a.FollowUpQuestionID,
		})
	}
	return Snapshot{
		LocalID:               n.localID,
		DisplayIndex:          n.displayIndex,
		Text:                  n.text,
		Description:           n.description,
		AllowMultipleResponse: n.allowMultipleResponse,
		AllowOpenResponse:     n.allowOpenResponse,
		OpenResponseFormat:    n.openResponseFormat,
		Answers:               answers,
	}
}
