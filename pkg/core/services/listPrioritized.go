package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// PrioritizedList is the classified view of every stored project
type PrioritizedList struct {
	Projects []scoring.ClassifiedProject
	Cutoff   scoring.Cutoff
	// Counts covers the whole batch, before any class filter
	Counts map[scoring.Classification]int
	Total  int
}

// ListPrioritized scores and classifies every stored project, in submission order.
// When class is set only projects in that bucket are returned; the cutoff is still derived
// from the full batch.
func ListPrioritized(
	ctx context.Context,
	store ProjectReader,
	logger *zap.Logger,
	opts EvaluationOptions,
	class scoring.Classification,
) (*PrioritizedList, error) {
	logger.Debug("Fetching projects")
	projects, err := store.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	logger.Debug("Found projects", zap.Int("count", len(projects)))

	classified, cutoff, err := scoring.Evaluate(ctx, projects, opts.Policy, opts.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate projects: %w", err)
	}

	result := &PrioritizedList{
		Projects: classified,
		Cutoff:   cutoff,
		Counts:   countByClassification(classified),
		Total:    len(classified),
	}

	if class != "" {
		filtered := make([]scoring.ClassifiedProject, 0, result.Counts[class])
		for _, p := range classified {
			if p.Classification == class {
				filtered = append(filtered, p)
			}
		}
		result.Projects = filtered
	}

	logger.Info("Projects prioritized",
		zap.Int("total", result.Total),
		zap.Int("shown", len(result.Projects)),
		zap.Float64("impact_cutoff", cutoff.Impact),
		zap.Float64("effort_cutoff", cutoff.Effort))

	return result, nil
}
