package api

import (
	"context"
	"net/http"
	"net/url"

	"researchconnect/internal/domain"
)

// MessageInput is the payload for creating a triggered message. The trigger
// kind decides which condition field is required.
type MessageInput struct {
	ExperimentID string             `json:"experimentId" validate:"required"`
	Title        string             `json:"title" validate:"required"`
	Body         string             `json:"body" validate:"required"`
	Trigger      domain.TriggerKind `json:"trigger" validate:"required,oneof=species_encounter proximity answer_linked"`
	SpeciesID    string             `json:"speciesId,omitempty" validate:"required_if=Trigger species_encounter"`
	RadiusMeters int                `json:"radiusMeters,omitempty" validate:"required_if=Trigger proximity,omitempty,gt=0"`
	AnswerID     string             `json:"answerId,omitempty" validate:"required_if=Trigger answer_linked"`
}

// ListMessages returns the triggered messages of an experiment.
func (c *Client) ListMessages(ctx context.Context, experimentID string) ([]domain.Message, error) {
	var out []domain.Message
	path := "/messages?experimentId=" + url.QueryEscape(experimentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMessage stores a triggered message.
func (c *Client) CreateMessage(ctx context.Context, in MessageInput) (domain.Message, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Message{}, err
	}
	var out domain.Message
	if err := c.do(ctx, http.MethodPost, "/messages", in, &out); err != nil {
		return domain.Message{}, err
	}
	return out, nil
}

// DeleteMessage removes a triggered message.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+id, nil, nil)
}
