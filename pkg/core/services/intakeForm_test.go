package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/project-prioritization/pkg/clients/formsclient"
	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

func TestIntakeQuestions(t *testing.T) {
	questions := IntakeQuestions()
	scales := scoring.Scales()

	require.Len(t, questions, 2+len(scales))
	assert.Equal(t, NameQuestion, questions[0].Title)
	assert.Empty(t, questions[0].Options)
	assert.Equal(t, LegalQuestion, questions[1].Title)
	assert.Equal(t, []string{LegalNo, LegalYes}, questions[1].Options)

	for i, scale := range scales {
		q := questions[2+i]
		assert.Equal(t, scale.Title, q.Title)
		assert.Equal(t, scale.Options[:], q.Options)
	}
	assert.Equal(t, "Critérios de Impacto", questions[2].Description)
	assert.Equal(t, "Critérios de Esforço", questions[len(questions)-1].Description)
}

func TestCreateIntakeForm(t *testing.T) {
	creator := &mockFormCreator{}

	result, err := CreateIntakeForm(t.Context(), creator, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "form-1", result.FormID)
	assert.Equal(t, IntakeFormTitle, creator.title)
	assert.Len(t, creator.questions, 8)

	_, err = CreateIntakeForm(t.Context(), &mockFormCreator{err: errors.New("quota")}, zap.NewNop())
	assert.ErrorContains(t, err, "failed to create intake form")
}

func TestImportFormResponses(t *testing.T) {
	fixedNow(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	alreadyImported := projectAt(t, "p0", "Já importado", false, 3)
	alreadyImported.Source = model.SourceForm + "r0"
	store := &mockStore{projects: []model.Project{alreadyImported}}

	valid := projectAt(t, "", "Novo portal", true, 4)
	invalid := projectAt(t, "", "Resposta editada", false, 2)
	invalid.VendorDependency = "Outro"

	submitted := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	source := &mockResponses{responses: []formsclient.IntakeResponse{
		{ResponseID: "r0", SubmittedAt: submitted, AnswersByItem: answersFor(alreadyImported)},
		{ResponseID: "r1", SubmittedAt: submitted, AnswersByItem: answersFor(valid)},
		{ResponseID: "r2", SubmittedAt: submitted, AnswersByItem: answersFor(invalid)},
		{ResponseID: "r3", AnswersByItem: map[string]string{NameQuestion: "Sem respostas"}},
	}}

	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	result, err := ImportFormResponses(t.Context(), store, source, zap.NewNop(), "form-1", since)
	require.NoError(t, err)

	assert.Equal(t, "form-1", source.formID)
	assert.Equal(t, since, source.since)
	assert.Equal(t, 1, result.Skipped)

	require.Len(t, result.Imported, 1)
	imported := result.Imported[0]
	assert.Equal(t, "Novo portal", imported.Name)
	assert.True(t, imported.IsLegalDemand)
	assert.Equal(t, model.SourceForm+"r1", imported.Source)
	assert.Equal(t, "2025-03-10T14:00:00.000000Z", imported.CreatedAt)
	assert.Equal(t, valid.Alignment, imported.Alignment)

	require.Len(t, result.Rejected, 2)
	assert.Equal(t, "r2", result.Rejected[0].ResponseID)
	assert.Equal(t, "Resposta editada", result.Rejected[0].Name)
	assert.Contains(t, result.Rejected[0].Reason, "unknown category")
	assert.Equal(t, "r3", result.Rejected[1].ResponseID)
	assert.Contains(t, result.Rejected[1].Reason, "validation failed")

	require.Len(t, store.projects, 2)
	assert.Equal(t, imported, store.projects[1])
}

func TestImportFormResponses_IsIdempotent(t *testing.T) {
	store := &mockStore{}
	p := projectAt(t, "", "Portal", false, 3)
	source := &mockResponses{responses: []formsclient.IntakeResponse{
		{ResponseID: "r1", SubmittedAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), AnswersByItem: answersFor(p)},
		{ResponseID: "r1", SubmittedAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), AnswersByItem: answersFor(p)},
	}}

	first, err := ImportFormResponses(t.Context(), store, source, zap.NewNop(), "form-1", time.Time{})
	require.NoError(t, err)
	assert.Len(t, first.Imported, 1)
	assert.Equal(t, 1, first.Skipped)

	second, err := ImportFormResponses(t.Context(), store, source, zap.NewNop(), "form-1", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, store.projects, 1)
}

func TestImportFormResponses_Errors(t *testing.T) {
	_, err := ImportFormResponses(t.Context(), &mockStore{}, &mockResponses{}, zap.NewNop(), "", time.Time{})
	assert.ErrorContains(t, err, "intakeFormID is not configured")

	_, err = ImportFormResponses(t.Context(), &mockStore{getErr: errors.New("offline")}, &mockResponses{}, zap.NewNop(), "form-1", time.Time{})
	assert.ErrorContains(t, err, "failed to fetch projects")

	_, err = ImportFormResponses(t.Context(), &mockStore{}, &mockResponses{err: errors.New("403")}, zap.NewNop(), "form-1", time.Time{})
	assert.ErrorContains(t, err, "failed to fetch form responses")

	p := projectAt(t, "", "Portal", false, 3)
	source := &mockResponses{responses: []formsclient.IntakeResponse{{ResponseID: "r1", AnswersByItem: answersFor(p)}}}
	_, err = ImportFormResponses(t.Context(), &mockStore{insertErr: errors.New("full")}, source, zap.NewNop(), "form-1", time.Time{})
	assert.ErrorContains(t, err, "failed to save project from response r1")
}
