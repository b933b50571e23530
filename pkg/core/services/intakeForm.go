package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/project-prioritization/pkg/clients/formsclient"
	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// Intake form wording. Imported answers are matched to these titles.
const (
	IntakeFormTitle       = "Ferramenta de Priorização de Projetos"
	IntakeFormDescription = "Preencha os campos abaixo para registrar um novo projeto."
	NameQuestion          = "Nome do Projeto"
	LegalQuestion         = "É uma Demanda Legal ou de Auditoria? (prioridade máxima)"
	LegalYes              = "Sim"
	LegalNo               = "Não"
)

// IntakeFormCreator creates the Google Form requesters submit projects through
type IntakeFormCreator interface {
	CreateIntakeForm(ctx context.Context, title, description string, questions []formsclient.Question) (*formsclient.IntakeFormResult, error)
}

// IntakeResponseSource lists intake form responses
type IntakeResponseSource interface {
	GetIntakeResponses(ctx context.Context, formID string, since time.Time) ([]formsclient.IntakeResponse, error)
}

// IntakeQuestions returns the form questions: name, legal flag, then one single-choice
// question per criterion offering exactly its fixed descriptions
func IntakeQuestions() []formsclient.Question {
	questions := []formsclient.Question{
		{Title: NameQuestion},
		{Title: LegalQuestion, Options: []string{LegalNo, LegalYes}},
	}
	for _, scale := range scoring.Scales() {
		description := "Critérios de Impacto"
		if scale.Axis == scoring.AxisEffort {
			description = "Critérios de Esforço"
		}
		questions = append(questions, formsclient.Question{
			Title:       scale.Title,
			Description: description,
			Options:     scale.Options[:],
		})
	}
	return questions
}

// CreateIntakeForm creates a new intake form. Its ID goes into intakeFormID in the config.
func CreateIntakeForm(ctx context.Context, creator IntakeFormCreator, logger *zap.Logger) (*formsclient.IntakeFormResult, error) {
	logger.Debug("Creating intake form")

	result, err := creator.CreateIntakeForm(ctx, IntakeFormTitle, IntakeFormDescription, IntakeQuestions())
	if err != nil {
		return nil, fmt.Errorf("failed to create intake form: %w", err)
	}

	logger.Info("Intake form created",
		zap.String("form_id", result.FormID),
		zap.String("responder_uri", result.ResponderURI))

	return result, nil
}

// RejectedResponse is a form response that could not be turned into a project
type RejectedResponse struct {
	ResponseID string
	Name       string
	Reason     string
}

// ImportResult summarises an import run
type ImportResult struct {
	Imported []model.Project
	Skipped  int // already imported
	Rejected []RejectedResponse
}

// ImportFormResponses stores every new form response as a project.
// Responses already stored (matched by source) are skipped; responses that fail validation
// are reported and not stored.
func ImportFormResponses(
	ctx context.Context,
	store ProjectStore,
	source IntakeResponseSource,
	logger *zap.Logger,
	formID string,
	since time.Time,
) (*ImportResult, error) {
	if formID == "" {
		return nil, errors.New("intakeFormID is not configured")
	}

	logger.Debug("Fetching stored projects")
	existing, err := store.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Source] = true
	}

	logger.Debug("Fetching form responses", zap.String("form_id", formID), zap.Time("since", since))
	responses, err := source.GetIntakeResponses(ctx, formID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch form responses: %w", err)
	}
	logger.Debug("Found form responses", zap.Int("count", len(responses)))

	result := &ImportResult{}
	for _, r := range responses {
		origin := model.SourceForm + r.ResponseID
		if seen[origin] {
			result.Skipped++
			continue
		}

		submittedAt := r.SubmittedAt
		if submittedAt.IsZero() {
			submittedAt = now()
		}

		project, _, err := prepareProject(projectFromResponse(r), origin, submittedAt)
		if err != nil {
			logger.Warn("Rejected form response",
				zap.String("response_id", r.ResponseID),
				zap.Error(err))
			result.Rejected = append(result.Rejected, RejectedResponse{
				ResponseID: r.ResponseID,
				Name:       r.AnswersByItem[NameQuestion],
				Reason:     err.Error(),
			})
			continue
		}

		if err := store.InsertProject(ctx, &project); err != nil {
			return result, fmt.Errorf("failed to save project from response %s: %w", r.ResponseID, err)
		}
		seen[origin] = true
		result.Imported = append(result.Imported, project)
	}

	logger.Info("Form responses imported",
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", result.Skipped),
		zap.Int("rejected", len(result.Rejected)))

	return result, nil
}

func projectFromResponse(r formsclient.IntakeResponse) model.Project {
	p := model.Project{
		Name:          r.AnswersByItem[NameQuestion],
		IsLegalDemand: strings.EqualFold(strings.TrimSpace(r.AnswersByItem[LegalQuestion]), LegalYes),
	}
	for _, scale := range scoring.Scales() {
		p.SetAnswer(scale.Criterion, r.AnswersByItem[scale.Title])
	}
	return p
}
