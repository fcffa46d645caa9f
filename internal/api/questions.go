package api

import (
	"context"
	"net/http"
	"net/url"

	"researchconnect/internal/domain"
)

// ListQuestions returns a questionnaire's questions.
func (c *Client) ListQuestions(ctx context.Context, questionnaireID string) ([]domain.Question, error) {
	var out []domain.Question
	path := "/questions?questionnaireId=" + url.QueryEscape(questionnaireID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateQuestion stores a question and returns it with its server-issued id.
func (c *Client) CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	var out domain.Question
	if err := c.do(ctx, http.MethodPost, "/questions", q, &out); err != nil {
		return domain.Question{}, err
	}
	return out, nil
}

// DeleteQuestion removes a question.
func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/questions/"+id, nil, nil)
}
