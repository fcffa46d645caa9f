package editor

import (
	"sort"

	"github.com/google/uuid"

	"researchconnect/internal/domain"
)

// Coordinator owns the ordered question collection for one questionnaire
// draft. It assigns display indexes to new nodes, distributes sibling
// summaries so each node can compute its follow-up candidates, and
// aggregates per-node snapshots for saving.
type Coordinator struct {
	questionnaireID string
	nodes           []*Node // insertion order
	snapshots       map[string]Snapshot

	originalQuestionIDs []string
	originalAnswerIDs   []string

	newLocalID  func() string
	newAnswerID func() string

	redistributing bool
	pending        bool
}

// NewCoordinator starts an empty draft for the given questionnaire.
func NewCoordinator(questionnaireID string) *Coordinator {
	return &Coordinator{
		questionnaireID: questionnaireID,
		snapshots:       make(map[string]Snapshot),
		newLocalID:      uuid.NewString,
		newAnswerID:     uuid.NewString,
	}
}

// LoadExisting seeds the draft from server-side records and remembers their
// identifiers so the save can delete them. Server question ids double as the
// initial local ids; follow-up references between loaded answers therefore
// resolve without translation.
func (c *Coordinator) LoadExisting(questions []domain.Question, answersByQuestion map[string][]domain.Answer) {
	// Hold redistribution until every node is attached, otherwise a loaded
	// follow-up pointing at a not-yet-attached later question would be
	// cleared as dangling.
	c.redistributing = true

	ordered := append([]domain.Question(nil), questions...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	for _, q := range ordered {
		c.originalQuestionIDs = append(c.originalQuestionIDs, q.ID)

		mode := ModeSingle
		var options []AnswerOption
		if serverAnswers := answersByQuestion[q.ID]; len(serverAnswers) > 0 {
			mode = ModeMultiple
			for _, a := range serverAnswers {
				c.originalAnswerIDs = append(c.originalAnswerIDs, a.ID)
				options = append(options, AnswerOption{
					ID:                 a.ID,
					IndexValue:         a.Index,
					Text:               a.Text,
					FollowUpQuestionID: a.NextQuestionID,
				})
			}
		}

		c.attach(NodeConfig{
			LocalID:               q.ID,
			DisplayIndex:          q.Index,
			Mode:                  mode,
			Text:                  q.Text,
			Description:           q.Description,
			AllowMultipleResponse: q.AllowMultipleResponse,
			AllowOpenResponse:     q.AllowOpenResponse,
			OpenResponseFormat:    q.OpenResponseFormat,
			Answers:               options,
		})
	}

	c.redistributing = false
	c.redistribute()
}

// CreateNode appends a new question of the given mode at the next free
// display index and returns it.
func (c *Coordinator) CreateNode(mode ResponseMode) *Node {
	next := 0
	for _, n := range c.nodes {
		if n.DisplayIndex() > next {
			next = n.DisplayIndex()
		}
	}
	return c.attach(NodeConfig{
		LocalID:      c.newLocalID(),
		DisplayIndex: next + 1,
		Mode:         mode,
	})
}

func (c *Coordinator) attach(cfg NodeConfig) *Node {
	cfg.NewAnswerID = c.newAnswerID
	cfg.OnChange = c.aggregate
	node := NewNode(cfg)
	c.nodes = append(c.nodes, node)
	node.emitChange()
	return node
}

// RemoveNode deletes a question from the draft. Follow-up references held by
// surviving nodes are repaired during the sibling redistribution that follows.
func (c *Coordinator) RemoveNode(localID string) {
	for i, n := range c.nodes {
		if n.LocalID() == localID {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			break
		}
	}
	delete(c.snapshots, localID)
	c.redistribute()
}

// NodeByID returns the node with the given local id, or nil.
func (c *Coordinator) NodeByID(localID string) *Node {
	for _, n := range c.nodes {
		if n.LocalID() == localID {
			return n
		}
	}
	return nil
}

// SetNodeDisplayIndex reassigns one question's display index. All nodes then
// receive fresh sibling summaries, since follow-up candidacy depends on
// relative order.
func (c *Coordinator) SetNodeDisplayIndex(localID string, index int) {
	if n := c.NodeByID(localID); n != nil {
		n.SetDisplayIndex(index)
	}
}

// SetNodeText updates one question's text, which also relabels the follow-up
// options other questions present for it.
func (c *Coordinator) SetNodeText(localID, text string) {
	if n := c.NodeByID(localID); n != nil {
		n.SetText(text)
	}
}

// OrderedView returns the nodes sorted ascending by display index, ties
// broken by insertion order.
func (c *Coordinator) OrderedView() []*Node {
	out := append([]*Node(nil), c.nodes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayIndex() < out[j].DisplayIndex()
	})
	return out
}

// QuestionnaireID identifies the questionnaire being edited.
func (c *Coordinator) QuestionnaireID() string { return c.questionnaireID }

// NodeIDs returns the local ids of all questions in display order.
func (c *Coordinator) NodeIDs() []string {
	view := c.OrderedView()
	ids := make([]string, 0, len(view))
	for _, n := range view {
		ids = append(ids, n.LocalID())
	}
	return ids
}

// Snapshot returns the last aggregated snapshot for a question.
func (c *Coordinator) Snapshot(localID string) (Snapshot, bool) {
	s, ok := c.snapshots[localID]
	return s, ok
}

// OriginalQuestionIDs lists the server question ids loaded into this draft.
func (c *Coordinator) OriginalQuestionIDs() []string {
	return append([]string(nil), c.originalQuestionIDs...)
}

// OriginalAnswerIDs lists the server answer ids loaded into this draft.
func (c *Coordinator) OriginalAnswerIDs() []string {
	return append([]string(nil), c.originalAnswerIDs...)
}

// aggregate receives a node's snapshot. A change to a question's display
// index or text invalidates every node's candidate list, so those trigger a
// redistribution; answer-level changes do not.
func (c *Coordinator) aggregate(snap Snapshot) {
	prev, had := c.snapshots[snap.LocalID]
	c.snapshots[snap.LocalID] = snap
	if !had || prev.DisplayIndex != snap.DisplayIndex || prev.Text != snap.Text {
		c.redistribute()
	}
}

// redistribute hands every node the current sibling summaries. Emissions
// caused by cleared follow-ups re-enter aggregate; the pending flag folds
// them into one extra pass instead of recursing.
func (c *Coordinator) redistribute() {
	if c.redistributing {
		c.pending = true
		return
	}
	c.redistributing = true
	defer func() { c.redistributing = false }()

	for {
		c.pending = false
		summaries := make([]SiblingSummary, 0, len(c.nodes))
		for _, n := range c.nodes {
			snap, ok := c.snapshots[n.LocalID()]
			if !ok {
				continue
			}
			summaries = append(summaries, SiblingSummary{
				LocalID:      snap.LocalID,
				DisplayIndex: snap.DisplayIndex,
				Text:         snap.Text,
			})
		}
		for _, n := range c.nodes {
			n.ReconcileSiblings(summaries)
		}
		if !c.pending {
			return
		}
	}
}
