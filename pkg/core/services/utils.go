package services

import (
	"context"
	"time"

	"github.com/jakechorley/project-prioritization/internal/config"
	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// ProjectWriter stores a new project
type ProjectWriter interface {
	InsertProject(ctx context.Context, project *model.Project) error
}

// ProjectReader lists every stored project in submission order
type ProjectReader interface {
	GetProjects(ctx context.Context) ([]model.Project, error)
}

// ProjectStore reads and writes projects
type ProjectStore interface {
	ProjectWriter
	ProjectReader
}

// now is replaced in tests
var now = time.Now

// EvaluationOptions selects the cutoff policy used to classify a batch
type EvaluationOptions struct {
	Policy scoring.CutoffPolicy
	Cutoff scoring.Cutoff
}

// EvaluationFromConfig reads the cutoff policy and value from the configuration
func EvaluationFromConfig(cfg *config.Config) EvaluationOptions {
	value := cfg.Cutoff.Value
	if value == 0 {
		value = scoring.DefaultCutoffValue
	}
	return EvaluationOptions{
		Policy: scoring.CutoffPolicy(cfg.Cutoff.Policy),
		Cutoff: scoring.Cutoff{Impact: value, Effort: value},
	}
}

func countByClassification(projects []scoring.ClassifiedProject) map[scoring.Classification]int {
	counts := make(map[scoring.Classification]int, len(scoring.Classifications))
	for _, p := range projects {
		counts[p.Classification]++
	}
	return counts
}

func groupByClassification(projects []scoring.ClassifiedProject) map[scoring.Classification][]scoring.ClassifiedProject {
	groups := make(map[scoring.Classification][]scoring.ClassifiedProject)
	for _, p := range projects {
		groups[p.Classification] = append(groups[p.Classification], p)
	}
	return groups
}
