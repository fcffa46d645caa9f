package api

import (
	"context"
	"net/http"
	"net/url"

	"researchconnect/internal/domain"
)

// ListResponses returns all recorded responses for a questionnaire.
func (c *Client) ListResponses(ctx context.Context, questionnaireID string) ([]domain.Response, error) {
	var out []domain.Response
	path := "/responses?questionnaireId=" + url.QueryEscape(questionnaireID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
