package formsclient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/forms/v1"
)

// IntakeResponse is one submitted response with answers keyed by question title
type IntakeResponse struct {
	ResponseID    string
	SubmittedAt   time.Time
	Email         string
	AnswersByItem map[string]string
}

// GetIntakeResponses returns every response submitted after since (all of them when since is zero),
// oldest first. Answers are matched to questions by their title.
func (c *Client) GetIntakeResponses(ctx context.Context, formID string, since time.Time) ([]IntakeResponse, error) {
	form, err := c.service.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get form %s: %w", formID, err)
	}
	titles := questionTitles(form)

	call := c.service.Forms.Responses.List(formID)
	if !since.IsZero() {
		call = call.Filter("timestamp > " + since.UTC().Format(time.RFC3339))
	}

	var raw []*forms.FormResponse
	err = call.Pages(ctx, func(page *forms.ListFormResponsesResponse) error {
		raw = append(raw, page.Responses...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list form responses: %w", err)
	}

	responses := make([]IntakeResponse, 0, len(raw))
	for _, r := range raw {
		parsed, err := parseResponse(titles, r)
		if err != nil {
			return nil, err
		}
		if !since.IsZero() && !parsed.SubmittedAt.After(since) {
			continue
		}
		responses = append(responses, parsed)
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].SubmittedAt.Before(responses[j].SubmittedAt)
	})

	return responses, nil
}

// questionTitles maps question IDs to item titles
func questionTitles(form *forms.Form) map[string]string {
	titles := make(map[string]string)
	for _, item := range form.Items {
		if item.QuestionItem == nil || item.QuestionItem.Question == nil {
			continue
		}
		titles[item.QuestionItem.Question.QuestionId] = strings.TrimSpace(item.Title)
	}
	return titles
}

func parseResponse(titles map[string]string, r *forms.FormResponse) (IntakeResponse, error) {
	submitted := r.LastSubmittedTime
	if submitted == "" {
		submitted = r.CreateTime
	}
	submittedAt, err := time.Parse(time.RFC3339Nano, submitted)
	if err != nil {
		return IntakeResponse{}, fmt.Errorf("failed to parse submission time of response %s: %w", r.ResponseId, err)
	}

	answers := make(map[string]string, len(r.Answers))
	for questionID, answer := range r.Answers {
		title, ok := titles[questionID]
		if !ok || answer.TextAnswers == nil || len(answer.TextAnswers.Answers) == 0 {
			continue
		}
		answers[title] = strings.TrimSpace(answer.TextAnswers.Answers[0].Value)
	}

	return IntakeResponse{
		ResponseID:    r.ResponseId,
		SubmittedAt:   submittedAt.UTC(),
		Email:         r.RespondentEmail,
		AnswersByItem: answers,
	}, nil
}
