package api

import (
	"context"
	"net/http"
	"time"

	"researchconnect/internal/domain"
)

// ExperimentInput is the payload for creating or updating an experiment.
type ExperimentInput struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// ListExperiments returns the researcher's experiments.
func (c *Client) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	var out []domain.Experiment
	if err := c.do(ctx, http.MethodGet, "/experiments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateExperiment creates an experiment and returns the stored record.
func (c *Client) CreateExperiment(ctx context.Context, in ExperimentInput) (domain.Experiment, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Experiment{}, err
	}
	var out domain.Experiment
	if err := c.do(ctx, http.MethodPost, "/experiments", in, &out); err != nil {
		return domain.Experiment{}, err
	}
	return out, nil
}

// UpdateExperiment overwrites an experiment's editable fields.
func (c *Client) UpdateExperiment(ctx context.Context, id string, in ExperimentInput) (domain.Experiment, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Experiment{}, err
	}
	var out domain.Experiment
	if err := c.do(ctx, http.MethodPut, "/experiments/"+id, in, &out); err != nil {
		return domain.Experiment{}, err
	}
	return out, nil
}

// DeleteExperiment removes an experiment.
func (c *Client) DeleteExperiment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/experiments/"+id, nil, nil)
}
