package api

import (
	"context"
	"net/http"

	"researchconnect/internal/domain"
)

// LoadSpecies fetches the species reference list.
func (c *Client) LoadSpecies(ctx context.Context) ([]domain.Species, error) {
	var out []domain.Species
	if err := c.do(ctx, http.MethodGet, "/species", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadInteractionTypes fetches the interaction-type reference list.
func (c *Client) LoadInteractionTypes(ctx context.Context) ([]domain.InteractionType, error) {
	var out []domain.InteractionType
	if err := c.do(ctx, http.MethodGet, "/interaction-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
