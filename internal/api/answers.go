package api

import (
	"context"
	"net/http"
	"net/url"

	"researchconnect/internal/domain"
)

// ListAnswers returns a question's answer options.
func (c *Client) ListAnswers(ctx context.Context, questionID string) ([]domain.Answer, error) {
	var out []domain.Answer
	path := "/answers?questionId=" + url.QueryEscape(questionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAnswer stores an answer option and returns it with its server-issued id.
func (c *Client) CreateAnswer(ctx context.Context, a domain.Answer) (domain.Answer, error) {
	var out domain.Answer
	if err := c.do(ctx, http.MethodPost, "/answers", a, &out); err != nil {
		return domain.Answer{}, err
	}
	return out, nil
}

// DeleteAnswer removes an answer option.
func (c *Client) DeleteAnswer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/answers/"+id, nil, nil)
}
