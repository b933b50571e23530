package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/project-prioritization/internal/config"
	"github.com/jakechorley/project-prioritization/pkg/clients/sheetsclient"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
	"github.com/jakechorley/project-prioritization/pkg/export"
)

// ExportResult describes a written workbook
type ExportResult struct {
	Path   string
	Count  int
	Cutoff scoring.Cutoff
}

// ExportWorkbook writes every classified project to an .xlsx file
func ExportWorkbook(
	ctx context.Context,
	store ProjectReader,
	logger *zap.Logger,
	opts EvaluationOptions,
	path string,
) (*ExportResult, error) {
	if path == "" {
		path = export.DefaultFileName
	}

	list, err := ListPrioritized(ctx, store, logger, opts, "")
	if err != nil {
		return nil, err
	}

	logger.Debug("Writing workbook", zap.String("path", path))
	if err := export.WriteFile(path, list.Projects); err != nil {
		return nil, err
	}

	logger.Info("Workbook exported", zap.String("path", path), zap.Int("projects", list.Total))
	return &ExportResult{Path: path, Count: list.Total, Cutoff: list.Cutoff}, nil
}

// TablePublisher writes a table to a spreadsheet tab
type TablePublisher interface {
	PublishTable(ctx context.Context, spreadsheetID, tabTitle string, table *sheetsclient.PublishedTable) error
}

// PublishResult describes a published matrix
type PublishResult struct {
	SpreadsheetID string
	Tab           string
	Count         int
}

// PublishMatrix writes the classified projects to the configured matrix tab
func PublishMatrix(
	ctx context.Context,
	store ProjectReader,
	publisher TablePublisher,
	cfg *config.Config,
	logger *zap.Logger,
) (*PublishResult, error) {
	if cfg.MatrixSheetID == "" {
		return nil, errors.New("matrixSheetID is not configured")
	}

	opts := EvaluationFromConfig(cfg)
	list, err := ListPrioritized(ctx, store, logger, opts, "")
	if err != nil {
		return nil, err
	}

	table := matrixTable(list, opts.Policy, now())

	logger.Debug("Publishing matrix",
		zap.String("spreadsheet_id", cfg.MatrixSheetID),
		zap.String("tab", cfg.MatrixTab))
	if err := publisher.PublishTable(ctx, cfg.MatrixSheetID, cfg.MatrixTab, table); err != nil {
		return nil, fmt.Errorf("failed to publish matrix: %w", err)
	}

	logger.Info("Matrix published", zap.String("tab", cfg.MatrixTab), zap.Int("projects", list.Total))
	return &PublishResult{SpreadsheetID: cfg.MatrixSheetID, Tab: cfg.MatrixTab, Count: list.Total}, nil
}

func matrixTable(list *PrioritizedList, policy scoring.CutoffPolicy, at time.Time) *sheetsclient.PublishedTable {
	if policy == "" {
		policy = scoring.CutoffFixed
	}

	rows := make([][]interface{}, len(list.Projects))
	for i, p := range list.Projects {
		rows[i] = export.Row(p)
	}

	return &sheetsclient.PublishedTable{
		Preamble: [2]string{
			fmt.Sprintf("Matriz de Priorização - atualizada em %s", at.Format("2006-01-02 15:04")),
			fmt.Sprintf("Corte (%s): impacto %.2f, esforço %.2f", policy, list.Cutoff.Impact, list.Cutoff.Effort),
		},
		Header: export.Header(),
		Rows:   rows,
	}
}
