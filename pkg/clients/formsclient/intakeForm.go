package formsclient

import (
	"context"
	"fmt"

	"google.golang.org/api/forms/v1"
)

// Question is a required question on the intake form. Without options it is a short text
// question; with options it is a single-choice radio question.
type Question struct {
	Title       string
	Description string
	Options     []string
}

// IntakeFormResult contains the created form details
type IntakeFormResult struct {
	FormID       string
	ResponderURI string // the URL requesters use to fill out the form
}

// CreateIntakeForm creates a Google Form with the given questions, in order.
// The Forms API only accepts the title on creation, so items are added in a second batch update.
func (c *Client) CreateIntakeForm(ctx context.Context, title, description string, questions []Question) (*IntakeFormResult, error) {
	created, err := c.service.Forms.Create(&forms.Form{
		Info: &forms.Info{
			Title:         title,
			DocumentTitle: title,
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	update := &forms.BatchUpdateFormRequest{Requests: buildIntakeRequests(description, questions)}
	if _, err := c.service.Forms.BatchUpdate(created.FormId, update).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to add questions to form %s: %w", created.FormId, err)
	}

	return &IntakeFormResult{
		FormID:       created.FormId,
		ResponderURI: created.ResponderUri,
	}, nil
}

func buildIntakeRequests(description string, questions []Question) []*forms.Request {
	requests := make([]*forms.Request, 0, len(questions)+1)

	if description != "" {
		requests = append(requests, &forms.Request{
			UpdateFormInfo: &forms.UpdateFormInfoRequest{
				Info:       &forms.Info{Description: description},
				UpdateMask: "description",
			},
		})
	}

	for i, q := range questions {
		question := &forms.Question{Required: true}
		if len(q.Options) == 0 {
			question.TextQuestion = &forms.TextQuestion{}
		} else {
			options := make([]*forms.Option, len(q.Options))
			for j, o := range q.Options {
				options[j] = &forms.Option{Value: o}
			}
			question.ChoiceQuestion = &forms.ChoiceQuestion{Type: "RADIO", Options: options}
		}

		requests = append(requests, &forms.Request{
			CreateItem: &forms.CreateItemRequest{
				Item: &forms.Item{
					Title:        q.Title,
					Description:  q.Description,
					QuestionItem: &forms.QuestionItem{Question: question},
				},
				// Index 0 must be sent explicitly or the API rejects the location
				Location: &forms.Location{Index: int64(i), ForceSendFields: []string{"Index"}},
			},
		})
	}

	return requests
}
