package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

var validate = validator.New()

// SubmitResult contains the stored project and its scores
type SubmitResult struct {
	Project model.Project
	Scored  scoring.ScoredProject
}

// SubmitProject validates and stores one intake submission.
// Projects whose descriptions do not score are rejected and nothing is stored.
func SubmitProject(
	ctx context.Context,
	store ProjectWriter,
	logger *zap.Logger,
	input model.Project,
	source string,
) (*SubmitResult, error) {
	logger.Debug("Submitting project", zap.String("name", input.Name), zap.String("source", source))

	project, scored, err := prepareProject(input, source, now())
	if err != nil {
		return nil, err
	}

	if err := store.InsertProject(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	logger.Info("Project submitted",
		zap.String("id", project.ID),
		zap.String("name", project.Name),
		zap.Float64("impact", scored.ImpactScore),
		zap.Float64("effort", scored.EffortScore))

	return &SubmitResult{Project: project, Scored: scored}, nil
}

// prepareProject validates the raw answers and assigns the stored identity fields
func prepareProject(input model.Project, source string, submittedAt time.Time) (model.Project, scoring.ScoredProject, error) {
	project := input
	project.Name = strings.TrimSpace(project.Name)

	if err := validate.Struct(project); err != nil {
		return model.Project{}, scoring.ScoredProject{}, fmt.Errorf("validation failed: %w", err)
	}

	scored, err := scoring.Score(project)
	if err != nil {
		return model.Project{}, scoring.ScoredProject{}, err
	}

	project.ID = uuid.NewString()
	project.CreatedAt = model.FormatTimestamp(submittedAt)
	project.Source = source
	scored.Project = project

	return project, scored, nil
}
