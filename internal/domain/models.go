package domain

import "time"

// Experiment is a field study owned by a researcher.
type Experiment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Questionnaire groups questions under an experiment.
type Questionnaire struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ExperimentID string `json:"experimentId"`
}

// Question is the persisted (server-side) form of a question.
type Question struct {
	ID                    string `json:"id"`
	QuestionnaireID       string `json:"questionnaireId"`
	Index                 int    `json:"index"`
	Text                  string `json:"text"`
	Description           string `json:"description"`
	AllowMultipleResponse bool   `json:"allowMultipleResponse"`
	AllowOpenResponse     bool   `json:"allowOpenResponse"`
	OpenResponseFormat    string `json:"openResponseFormat,omitempty"`
}

// Answer is the persisted form of one answer option. NextQuestionID
// carries the follow-up link and is empty when the option does not branch.
type Answer struct {
	ID             string `json:"id"`
	QuestionID     string `json:"questionId"`
	Index          int    `json:"index"`
	Text           string `json:"text"`
	NextQuestionID string `json:"nextQuestionId,omitempty"`
}

// TriggerKind discriminates how a message is delivered to participants.
type TriggerKind string

const (
	TriggerSpeciesEncounter TriggerKind = "species_encounter"
	TriggerProximity        TriggerKind = "proximity"
	TriggerAnswerLinked     TriggerKind = "answer_linked"
)

// Message is a researcher-defined notification with a trigger condition.
type Message struct {
	ID           string      `json:"id"`
	ExperimentID string      `json:"experimentId"`
	Title        string      `json:"title"`
	Body         string      `json:"body"`
	Trigger      TriggerKind `json:"trigger"`
	SpeciesID    string      `json:"speciesId,omitempty"`
	RadiusMeters int         `json:"radiusMeters,omitempty"`
	AnswerID     string      `json:"answerId,omitempty"`
}

// Species is a read-only reference record used by encounter triggers.
type Species struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InteractionType is a read-only reference record used by proximity triggers.
type InteractionType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Response is one participant's recorded reply to a question.
type Response struct {
	ID            string    `json:"id"`
	QuestionID    string    `json:"questionId"`
	ParticipantID string    `json:"participantId"`
	AnswerIDs     []string  `json:"answerIds,omitempty"`
	OpenText      string    `json:"openText,omitempty"`
	RecordedAt    time.Time `json:"recordedAt"`
}
