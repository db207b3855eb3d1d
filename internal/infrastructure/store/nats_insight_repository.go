// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// NatsInsightRepository implements domain.InsightRepository using two NATS
// KV buckets, one for insights and one for their brainstormed solutions.
type NatsInsightRepository struct {
	insights  *NatsBaseRepository[models.Insight]
	solutions *NatsBaseRepository[models.Solution]
}

// NewNatsInsightRepository creates a new insight repository
func NewNatsInsightRepository(insightKV, solutionKV INatsKeyValue) *NatsInsightRepository {
	return &NatsInsightRepository{
		insights:  NewNatsBaseRepository[models.Insight](insightKV, "insight"),
		solutions: NewNatsBaseRepository[models.Solution](solutionKV, "solution"),
	}
}

// IsReady checks if both underlying buckets are available
func (r *NatsInsightRepository) IsReady() bool {
	return r.insights.IsReady() && r.solutions.IsReady()
}

// CreateInsight creates a new insight
func (r *NatsInsightRepository) CreateInsight(ctx context.Context, insight *models.Insight) error {
	return r.insights.CreateIfAbsent(ctx, insight.UID, insight)
}

// GetInsight retrieves an insight by UID
func (r *NatsInsightRepository) GetInsight(ctx context.Context, insightUID string) (*models.Insight, error) {
	return r.insights.Get(ctx, insightUID)
}

// ListAllInsights retrieves all insights
func (r *NatsInsightRepository) ListAllInsights(ctx context.Context) ([]*models.Insight, error) {
	return r.insights.ListEntities(ctx)
}

// CreateSolution creates a new solution
func (r *NatsInsightRepository) CreateSolution(ctx context.Context, solution *models.Solution) error {
	return r.solutions.CreateIfAbsent(ctx, solution.UID, solution)
}

// ListSolutionsByInsight retrieves all solutions for one insight
func (r *NatsInsightRepository) ListSolutionsByInsight(ctx context.Context, insightUID string) ([]*models.Solution, error) {
	all, err := r.solutions.ListEntities(ctx)
	if err != nil {
		return nil, err
	}

	var solutions []*models.Solution
	for _, solution := range all {
		if solution.InsightID == insightUID {
			solutions = append(solutions, solution)
		}
	}
	return solutions, nil
}
