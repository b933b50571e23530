package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jakechorley/project-prioritization/pkg/clients/formsclient"
	"github.com/jakechorley/project-prioritization/pkg/clients/gmailclient"
	"github.com/jakechorley/project-prioritization/pkg/clients/sheetsclient"
	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixedNow pins the service clock for the duration of a test
func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	previous := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = previous })
}

// mockStore implements ProjectStore
type mockStore struct {
	projects  []model.Project
	getErr    error
	insertErr error
}

func (m *mockStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.projects, nil
}

func (m *mockStore) InsertProject(ctx context.Context, project *model.Project) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.projects = append(m.projects, *project)
	return nil
}

// mockResponses implements IntakeResponseSource
type mockResponses struct {
	responses []formsclient.IntakeResponse
	err       error
	formID    string
	since     time.Time
}

func (m *mockResponses) GetIntakeResponses(ctx context.Context, formID string, since time.Time) ([]formsclient.IntakeResponse, error) {
	m.formID = formID
	m.since = since
	if m.err != nil {
		return nil, m.err
	}
	return m.responses, nil
}

// mockFormCreator implements IntakeFormCreator
type mockFormCreator struct {
	title     string
	questions []formsclient.Question
	err       error
}

func (m *mockFormCreator) CreateIntakeForm(ctx context.Context, title, description string, questions []formsclient.Question) (*formsclient.IntakeFormResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.title = title
	m.questions = questions
	return &formsclient.IntakeFormResult{FormID: "form-1", ResponderURI: "https://forms.example/form-1"}, nil
}

// mockPublisher implements TablePublisher
type mockPublisher struct {
	spreadsheetID string
	tab           string
	table         *sheetsclient.PublishedTable
	err           error
}

func (m *mockPublisher) PublishTable(ctx context.Context, spreadsheetID, tabTitle string, table *sheetsclient.PublishedTable) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.tab = tabTitle
	m.table = table
	return nil
}

// mockSender implements EmailSender
type mockSender struct {
	sent []gmailclient.Email
	err  error
}

func (m *mockSender) SendEmail(ctx context.Context, email gmailclient.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

// projectAt answers every criterion with the option scoring the given value
func projectAt(t *testing.T, id, name string, legal bool, score int) model.Project {
	t.Helper()
	p := model.Project{
		ID:            id,
		Name:          name,
		IsLegalDemand: legal,
		CreatedAt:     "2025-03-01T09:00:00Z",
		Source:        model.SourceCLI,
	}
	for _, scale := range scoring.Scales() {
		option, err := scale.Option(score)
		require.NoError(t, err)
		p.SetAnswer(scale.Criterion, option)
	}
	return p
}

// answersFor builds form answers for a project
func answersFor(p model.Project) map[string]string {
	legal := LegalNo
	if p.IsLegalDemand {
		legal = LegalYes
	}
	answers := map[string]string{
		NameQuestion:  p.Name,
		LegalQuestion: legal,
	}
	for _, scale := range scoring.Scales() {
		answers[scale.Title] = p.Answer(scale.Criterion)
	}
	return answers
}
