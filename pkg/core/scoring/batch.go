package scoring

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
)

// ScoreAll scores every project concurrently. The result has the same order as the input.
// The first project that fails to score cancels the rest and its error is returned,
// wrapped with the project's name and ID.
func ScoreAll(ctx context.Context, projects []model.Project) ([]ScoredProject, error) {
	scored := make([]ScoredProject, len(projects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range projects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Score(projects[i])
			if err != nil {
				return fmt.Errorf("project %q (%s): %w", projects[i].Name, projects[i].ID, err)
			}
			scored[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

// Evaluate scores and classifies a batch in one call.
// Scoring completes for every project before classification starts.
func Evaluate(ctx context.Context, projects []model.Project, policy CutoffPolicy, fixed Cutoff) ([]ClassifiedProject, Cutoff, error) {
	scored, err := ScoreAll(ctx, projects)
	if err != nil {
		return nil, Cutoff{}, err
	}
	return ClassifyAll(scored, policy, fixed)
}
