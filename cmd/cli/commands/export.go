package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/project-prioritization/pkg/core/services"
	"github.com/jakechorley/project-prioritization/pkg/export"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Export the detailed matrix to an Excel workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := export.DefaultFileName
			if len(args) > 0 {
				path = args[0]
			}

			result, err := services.ExportWorkbook(app.Ctx, app.Database, app.Logger, services.EvaluationFromConfig(app.Cfg), path)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.out(), "\n✓ %d projetos exportados para %s\n\n", result.Count, result.Path)
			return nil
		},
	}
}

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish the matrix to the configured Google Sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishMatrix(app.Ctx, app.Database, sheets, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(app.out(), "\n✓ %d projetos publicados na aba %q\n", result.Count, result.Tab)
			fmt.Fprintf(app.out(), "https://docs.google.com/spreadsheets/d/%s\n\n", result.SpreadsheetID)
			return nil
		},
	}
}
