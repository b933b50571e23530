package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/project-prioritization/pkg/core/services"
)

// CreateIntakeFormCmd creates the createIntakeForm command
func CreateIntakeFormCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "createIntakeForm",
		Short:       "Create the Google Form requesters use to submit projects",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noDatabase: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			forms, err := app.FormsClient()
			if err != nil {
				return err
			}

			result, err := services.CreateIntakeForm(app.Ctx, forms, app.Logger)
			if err != nil {
				return err
			}

			out := app.out()
			fmt.Fprintf(out, "\n✓ Formulário criado!\n\n")
			fmt.Fprintf(out, "Form ID: %s\n", result.FormID)
			fmt.Fprintf(out, "Link:    %s\n\n", result.ResponderURI)
			fmt.Fprintf(out, "Add to your config to enable importResponses:\n  intakeFormID: %q\n\n", result.FormID)
			return nil
		},
	}
}

// ImportResponsesCmd creates the importResponses command
func ImportResponsesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importResponses",
		Short: "Import new intake form responses as projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sinceFlag, _ := cmd.Flags().GetString("since")
			since, err := parseSince(sinceFlag)
			if err != nil {
				return err
			}

			forms, err := app.FormsClient()
			if err != nil {
				return err
			}

			result, err := services.ImportFormResponses(app.Ctx, app.Database, forms, app.Logger, app.Cfg.IntakeFormID, since)
			if err != nil {
				return err
			}

			out := app.out()
			fmt.Fprintf(out, "\n✓ Importação concluída\n\n")
			fmt.Fprintf(out, "Importados:   %d\n", len(result.Imported))
			fmt.Fprintf(out, "Já existentes: %d\n", result.Skipped)
			for _, p := range result.Imported {
				fmt.Fprintf(out, "  ✓ %s\n", p.Name)
			}

			if len(result.Rejected) > 0 {
				fmt.Fprintf(out, "\n⚠️  %d respostas rejeitadas:\n", len(result.Rejected))
				for _, r := range result.Rejected {
					fmt.Fprintf(out, "  ✗ %s (%s): %s\n", r.Name, r.ResponseID, r.Reason)
				}
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().String("since", "", "Only import responses submitted after this time (YYYY-MM-DD or RFC3339)")

	return cmd
}

// parseSince accepts an empty string, a date or an RFC3339 timestamp
func parseSince(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--since must be YYYY-MM-DD or RFC3339: %w", err)
	}
	return t, nil
}

// SendReportCmd creates the sendReport command
func SendReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sendReport",
		Short: "Email the prioritisation summary to the configured recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gmail, err := app.GmailClient()
			if err != nil {
				return err
			}

			result, err := services.SendReport(app.Ctx, app.Database, gmail, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			out := app.out()
			fmt.Fprintf(out, "\n✓ Relatório enviado para %d destinatários\n", len(result.Recipients))
			if !result.NextReview.IsZero() {
				fmt.Fprintf(out, "Próxima revisão: %s\n", result.NextReview.Format("02/01/2006 15:04"))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
