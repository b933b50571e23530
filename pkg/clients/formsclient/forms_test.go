package formsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/forms/v1"
)

func TestBuildIntakeRequests(t *testing.T) {
	requests := buildIntakeRequests("Descreva o projeto", []Question{
		{Title: "Nome do projeto"},
		{Title: "Custo", Options: []string{"Baixo", "Médio", "Alto"}},
	})

	require.Len(t, requests, 3)
	assert.Equal(t, "description", requests[0].UpdateFormInfo.UpdateMask)

	text := requests[1].CreateItem
	assert.Equal(t, "Nome do projeto", text.Item.Title)
	assert.NotNil(t, text.Item.QuestionItem.Question.TextQuestion)
	assert.True(t, text.Item.QuestionItem.Question.Required)
	assert.Equal(t, int64(0), text.Location.Index)
	assert.Contains(t, text.Location.ForceSendFields, "Index")

	choice := requests[2].CreateItem
	assert.Equal(t, int64(1), choice.Location.Index)
	require.NotNil(t, choice.Item.QuestionItem.Question.ChoiceQuestion)
	assert.Equal(t, "RADIO", choice.Item.QuestionItem.Question.ChoiceQuestion.Type)
	values := []string{}
	for _, o := range choice.Item.QuestionItem.Question.ChoiceQuestion.Options {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"Baixo", "Médio", "Alto"}, values)
}

func TestBuildIntakeRequests_NoDescription(t *testing.T) {
	requests := buildIntakeRequests("", []Question{{Title: "Nome do projeto"}})
	require.Len(t, requests, 1)
	assert.Nil(t, requests[0].UpdateFormInfo)
}

func TestParseResponse_MapsAnswersByTitle(t *testing.T) {
	form := &forms.Form{Items: []*forms.Item{
		{Title: "Nome do projeto ", QuestionItem: &forms.QuestionItem{Question: &forms.Question{QuestionId: "q1"}}},
		{Title: "Custo", QuestionItem: &forms.QuestionItem{Question: &forms.Question{QuestionId: "q2"}}},
		{Title: "Section", PageBreakItem: &forms.PageBreakItem{}},
	}}

	resp := &forms.FormResponse{
		ResponseId:        "resp-1",
		LastSubmittedTime: "2025-04-10T12:30:45.123Z",
		RespondentEmail:   "ana@example.com",
		Answers: map[string]forms.Answer{
			"q1":      {TextAnswers: &forms.TextAnswers{Answers: []*forms.TextAnswer{{Value: " Churn dashboard "}}}},
			"q2":      {TextAnswers: &forms.TextAnswers{Answers: []*forms.TextAnswer{{Value: "Baixo"}}}},
			"unknown": {TextAnswers: &forms.TextAnswers{Answers: []*forms.TextAnswer{{Value: "ignored"}}}},
			"empty":   {},
		},
	}

	parsed, err := parseResponse(questionTitles(form), resp)
	require.NoError(t, err)

	assert.Equal(t, "resp-1", parsed.ResponseID)
	assert.Equal(t, "ana@example.com", parsed.Email)
	assert.Equal(t, time.Date(2025, 4, 10, 12, 30, 45, 123000000, time.UTC), parsed.SubmittedAt)
	assert.Equal(t, map[string]string{
		"Nome do projeto": "Churn dashboard",
		"Custo":           "Baixo",
	}, parsed.AnswersByItem)
}

func TestParseResponse_FallsBackToCreateTime(t *testing.T) {
	parsed, err := parseResponse(map[string]string{}, &forms.FormResponse{
		ResponseId: "resp-2",
		CreateTime: "2025-04-10T08:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC), parsed.SubmittedAt)
	assert.Empty(t, parsed.AnswersByItem)
}

func TestParseResponse_BadTimestamp(t *testing.T) {
	_, err := parseResponse(map[string]string{}, &forms.FormResponse{
		ResponseId:        "resp-3",
		LastSubmittedTime: "10/04/2025 08:00",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "resp-3")

	_, err = parseResponse(map[string]string{}, &forms.FormResponse{ResponseId: "resp-4"})
	assert.Error(t, err)
}
