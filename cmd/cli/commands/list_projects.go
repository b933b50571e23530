package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/project-prioritization/pkg/core/matrix"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
	"github.com/jakechorley/project-prioritization/pkg/core/services"
)

// ListProjectsCmd creates the listProjects command
func ListProjectsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listProjects",
		Short: "Show every project with its scores and classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classFlag, _ := cmd.Flags().GetString("class")

			var class scoring.Classification
			if classFlag != "" {
				var err error
				class, err = scoring.ParseClassification(classFlag)
				if err != nil {
					return err
				}
			}

			list, err := services.ListPrioritized(app.Ctx, app.Database, app.Logger, services.EvaluationFromConfig(app.Cfg), class)
			if err != nil {
				return err
			}

			out := app.out()
			if list.Total == 0 {
				fmt.Fprintln(out, "Nenhum projeto cadastrado ainda.")
				return nil
			}

			fmt.Fprintf(out, "\n📋 Matriz de Priorização (%d projetos)\n\n", list.Total)
			fmt.Fprint(out, renderTable(list.Projects))
			fmt.Fprintln(out)
			fmt.Fprint(out, renderSummary(list.Counts, list.Cutoff))
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().String("class", "", "Only show one classification (e.g. QuickWins or \"Ganhos Rápidos\")")

	return cmd
}

// MatrixCmd creates the matrix command
func MatrixCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Plot the impact/effort matrix in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")

			list, err := services.ListPrioritized(app.Ctx, app.Database, app.Logger, services.EvaluationFromConfig(app.Cfg), "")
			if err != nil {
				return err
			}

			points := matrix.PointsFrom(list.Projects)
			chart := matrix.Layout(points, list.Cutoff, width, height)

			fmt.Fprintln(app.out())
			fmt.Fprint(app.out(), renderMatrix(chart, points, list.Cutoff))
			fmt.Fprintln(app.out())

			return nil
		},
	}

	cmd.Flags().Int("width", 72, "Plot width in characters")
	cmd.Flags().Int("height", 24, "Plot height in lines")

	return cmd
}

// OptionsCmd creates the options command
func OptionsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "options",
		Short:       "List the valid descriptions for each criterion",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noDatabase: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.out()
			for _, scale := range services.ListOptions() {
				axis := "impacto"
				if scale.Axis == scoring.AxisEffort {
					axis = "esforço"
				}
				note := ""
				if scale.Inverted {
					note = ", invertido"
				}
				fmt.Fprintf(out, "\n%s %s\n", headerStyle.Render(scale.Title), dimStyle.Render(fmt.Sprintf("(--%s, %s%s)", criterionFlags[scale.Criterion], axis, note)))
				for i, option := range scale.Options {
					fmt.Fprintf(out, "  %d. %s\n", i+1, option)
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
