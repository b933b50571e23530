package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/project-prioritization/internal/config"
	"github.com/jakechorley/project-prioritization/pkg/clients/gmailclient"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// EmailSender sends an email
type EmailSender interface {
	SendEmail(ctx context.Context, email gmailclient.Email) error
}

// ReportResult describes a sent report
type ReportResult struct {
	Recipients []string
	Counts     map[scoring.Classification]int
	NextReview time.Time // zero when no review is scheduled
}

// SendReport emails the classified projects, grouped by bucket, to the configured recipients
func SendReport(
	ctx context.Context,
	store ProjectReader,
	sender EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
) (*ReportResult, error) {
	if len(cfg.Report.Recipients) == 0 {
		return nil, errors.New("report.recipients is not configured")
	}

	list, err := ListPrioritized(ctx, store, logger, EvaluationFromConfig(cfg), "")
	if err != nil {
		return nil, err
	}

	sentAt := now()
	next, ok, err := cfg.NextReview(sentAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		next = time.Time{}
	}

	email := reportEmail(list, sentAt, next)
	email.From = cfg.Report.Sender
	email.To = cfg.Report.Recipients

	logger.Debug("Sending report", zap.Strings("recipients", email.To))
	if err := sender.SendEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to send report: %w", err)
	}

	logger.Info("Report sent", zap.Int("recipients", len(email.To)), zap.Int("projects", list.Total))
	return &ReportResult{Recipients: email.To, Counts: list.Counts, NextReview: next}, nil
}

// reportEmail renders the summary in plain text and HTML
func reportEmail(list *PrioritizedList, sentAt, nextReview time.Time) gmailclient.Email {
	groups := groupByClassification(list.Projects)

	var text, body strings.Builder
	fmt.Fprintf(&text, "Priorização de projetos em %s\n", sentAt.Format("02/01/2006"))
	fmt.Fprintf(&text, "%d projetos. Corte: impacto %.2f, esforço %.2f\n", list.Total, list.Cutoff.Impact, list.Cutoff.Effort)

	fmt.Fprintf(&body, "<h2>Priorização de projetos em %s</h2>\n", sentAt.Format("02/01/2006"))
	fmt.Fprintf(&body, "<p>%d projetos. Corte: impacto %.2f, esforço %.2f</p>\n", list.Total, list.Cutoff.Impact, list.Cutoff.Effort)

	for _, c := range scoring.Classifications {
		projects := groups[c]
		if len(projects) == 0 {
			continue
		}

		fmt.Fprintf(&text, "\n%s (%d)\n", c.Label(), len(projects))
		fmt.Fprintf(&body, "<h3 style=\"color:%s\">%s (%d)</h3>\n<ul>\n", c.Color(), html.EscapeString(c.Label()), len(projects))
		for _, p := range projects {
			fmt.Fprintf(&text, "  - %s (impacto %.2f, esforço %.2f)\n", p.Name, p.ImpactScore, p.EffortScore)
			fmt.Fprintf(&body, "<li>%s (impacto %.2f, esforço %.2f)</li>\n", html.EscapeString(p.Name), p.ImpactScore, p.EffortScore)
		}
		body.WriteString("</ul>\n")
	}

	if !nextReview.IsZero() {
		fmt.Fprintf(&text, "\nPróxima revisão: %s\n", nextReview.Format("02/01/2006 15:04"))
		fmt.Fprintf(&body, "<p>Próxima revisão: %s</p>\n", nextReview.Format("02/01/2006 15:04"))
	}

	return gmailclient.Email{
		Subject: "Priorização de projetos - " + sentAt.Format("02/01/2006"),
		Text:    text.String(),
		HTML:    body.String(),
	}
}
