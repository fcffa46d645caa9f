package editor

// Snapshot is the normalized, save-ready view of one question that a node
// emits after every observable change.
type Snapshot struct {
	LocalID               string
	DisplayIndex          int
	Text                  string
	Description           string
	AllowMultipleResponse bool
	AllowOpenResponse     bool
	OpenResponseFormat    string
	Answers               []AnswerSnapshot
}

// AnswerSnapshot is the save-ready view of one answer option.
// NextQuestionID is a local question id until the save remaps it.
type AnswerSnapshot struct {
	Index          int
	Text           string
	NextQuestionID string
}

// Equal reports structural equality, used to suppress redundant emissions.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.LocalID != o.LocalID ||
		s.DisplayIndex != o.DisplayIndex ||
		s.Text != o.Text ||
		s.Description != o.Description ||
		s.AllowMultipleResponse != o.AllowMultipleResponse ||
		s.AllowOpenResponse != o.AllowOpenResponse ||
		s.OpenResponseFormat != o.OpenResponseFormat ||
		len(s.Answers) != len(o.Answers) {
		return false
	}
	for i := range s.Answers {
		if s.Answers[i] != o.Answers[i] {
			return false
		}
	}
	return true
}
