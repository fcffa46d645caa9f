package api

import (
	"context"
	"net/http"
	"net/url"

	"researchconnect/internal/domain"
)

// QuestionnaireInput is the payload for creating or renaming a questionnaire.
type QuestionnaireInput struct {
	Name         string `json:"name" validate:"required"`
	ExperimentID string `json:"experimentId" validate:"required"`
}

// GetQuestionnaire fetches one questionnaire record.
func (c *Client) GetQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error) {
	var out domain.Questionnaire
	if err := c.do(ctx, http.MethodGet, "/questionnaires/"+id, nil, &out); err != nil {
		return domain.Questionnaire{}, err
	}
	return out, nil
}

// ListQuestionnaires returns the questionnaires attached to an experiment.
func (c *Client) ListQuestionnaires(ctx context.Context, experimentID string) ([]domain.Questionnaire, error) {
	var out []domain.Questionnaire
	path := "/questionnaires?experimentId=" + url.QueryEscape(experimentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateQuestionnaire creates a questionnaire under an experiment.
func (c *Client) CreateQuestionnaire(ctx context.Context, in QuestionnaireInput) (domain.Questionnaire, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Questionnaire{}, err
	}
	var out domain.Questionnaire
	if err := c.do(ctx, http.MethodPost, "/questionnaires", in, &out); err != nil {
		return domain.Questionnaire{}, err
	}
	return out, nil
}

// UpdateQuestionnaire renames a questionnaire.
func (c *Client) UpdateQuestionnaire(ctx context.Context, id string, in QuestionnaireInput) (domain.Questionnaire, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Questionnaire{}, err
	}
	var out domain.Questionnaire
	if err := c.do(ctx, http.MethodPut, "/questionnaires/"+id, in, &out); err != nil {
		return domain.Questionnaire{}, err
	}
	return out, nil
}

// DeleteQuestionnaire removes a questionnaire.
func (c *Client) DeleteQuestionnaire(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/questionnaires/"+id, nil, nil)
}
