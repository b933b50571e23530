package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
	"github.com/jakechorley/project-prioritization/pkg/core/services"
	"github.com/jakechorley/project-prioritization/pkg/tui/intake"
)

// criterionFlags maps each criterion to its addProject flag
var criterionFlags = map[model.Criterion]string{
	model.CriterionAlignment:        "alignment",
	model.CriterionEBITDAImpact:     "ebitda",
	model.CriterionComplexity:       "complexity",
	model.CriterionCost:             "cost",
	model.CriterionEngagement:       "engagement",
	model.CriterionVendorDependency: "vendor",
}

// AddProjectCmd creates the addProject command
func AddProjectCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addProject [name]",
		Short: "Submit a project, from flags or the interactive form (--tui)",
		Long: `Submit a project for prioritisation.

Each criterion flag takes the option number (1-5, see 'options') or the exact description.
With --tui an interactive form offers only the valid descriptions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useTUI, _ := cmd.Flags().GetBool("tui")

			var (
				input  model.Project
				source string
				err    error
			)
			if useTUI && app.inSession {
				return errors.New("--tui is not available inside the interactive session; pass the criterion flags instead")
			}
			if useTUI {
				input, err = intake.Run(app.in(), app.out())
				if errors.Is(err, intake.ErrCancelled) {
					fmt.Fprintln(app.out(), "Cancelado.")
					return nil
				}
				if err != nil {
					return err
				}
				source = model.SourceTUI
			} else {
				input, err = projectFromFlags(cmd, args)
				if err != nil {
					return err
				}
				source = model.SourceCLI
			}

			result, err := services.SubmitProject(app.Ctx, app.Database, app.Logger, input, source)
			if err != nil {
				return err
			}

			classified := scoring.Classify(result.Scored, services.EvaluationFromConfig(app.Cfg).Cutoff)

			out := app.out()
			fmt.Fprintf(out, "\n✓ Projeto salvo!\n\n")
			fmt.Fprintf(out, "ID:            %s\n", result.Project.ID)
			fmt.Fprintf(out, "Nome:          %s\n", result.Project.Name)
			fmt.Fprintf(out, "Nota Impacto:  %.2f\n", result.Scored.ImpactScore)
			fmt.Fprintf(out, "Nota Esforço:  %.2f\n", result.Scored.EffortScore)
			fmt.Fprintf(out, "Classificação: %s\n", classStyle(classified.Classification).Render(classified.Classification.Label()))
			if app.Cfg.Cutoff.Policy == string(scoring.CutoffMedian) {
				fmt.Fprintln(out, dimStyle.Render("(classificação pelo corte fixo; 'listProjects' aplica a mediana do conjunto)"))
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().String("name", "", "Project name (or pass it as the argument)")
	cmd.Flags().Bool("legal", false, "The project is a legal or audit demand")
	cmd.Flags().Bool("tui", false, "Fill in the project with the interactive form")
	for _, c := range model.Criteria {
		scale, _ := scoring.ScaleFor(c)
		cmd.Flags().String(criterionFlags[c], "", fmt.Sprintf("%s (1-5 or exact description)", scale.Title))
	}

	return cmd
}

// projectFromFlags reads the name, legal flag and every criterion answer
func projectFromFlags(cmd *cobra.Command, args []string) (model.Project, error) {
	name, _ := cmd.Flags().GetString("name")
	if name == "" && len(args) > 0 {
		name = args[0]
	}
	legal, _ := cmd.Flags().GetBool("legal")

	p := model.Project{Name: name, IsLegalDemand: legal}
	for _, c := range model.Criteria {
		flag := criterionFlags[c]
		value, _ := cmd.Flags().GetString(flag)
		if value == "" {
			return model.Project{}, fmt.Errorf("--%s is required (or use --tui)", flag)
		}

		answer, err := services.ResolveAnswer(c, value)
		if err != nil {
			return model.Project{}, fmt.Errorf("invalid --%s: %w", flag, err)
		}
		p.SetAnswer(c, answer)
	}
	return p, nil
}
