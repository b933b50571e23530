package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jakechorley/project-prioritization/cmd/cli/commands"
	"github.com/jakechorley/project-prioritization/internal/config"
	"github.com/jakechorley/project-prioritization/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prioritization",
		Short: "Project intake prioritisation - impact/effort matrix",
		Long: `Collects project submissions, scores them on six criteria and classifies each one
into Legal Priority, Quick Wins, Major Projects, Quick Projects or Reevaluate.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects prioritization_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print info logs to the console")

	rootCmd.AddCommand(commands.AddProjectCmd(app))
	rootCmd.AddCommand(commands.ListProjectsCmd(app))
	rootCmd.AddCommand(commands.MatrixCmd(app))
	rootCmd.AddCommand(commands.OptionsCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.CreateIntakeFormCmd(app))
	rootCmd.AddCommand(commands.ImportResponsesCmd(app))
	rootCmd.AddCommand(commands.SendReportCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := execute(rootCmd); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and releases the app's resources even when a command fails
func execute(rootCmd *cobra.Command) error {
	defer closeApp()
	return rootCmd.Execute()
}

// initApp loads configuration, sets up the logger and opens the configured backend
func initApp(cmd *cobra.Command) error {
	app.Ctx = context.Background()
	app.Env = env

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg

	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.InfoLevel
	}
	logger, logFile, err := logging.InitLogger(env, cfg.LogsDir,
		logging.WithConsole(os.Stderr),
		logging.WithConsoleLevel(consoleLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	app.Logger.Info("Starting application",
		zap.String("command", cmd.Name()),
		zap.String("backend", cfg.Backend),
		zap.String("log_file", logFile))

	if !commands.NeedsDatabase(cmd) {
		return nil
	}

	app.Database, err = commands.OpenDatabase(app)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.Logger.Debug("Database ready")

	return nil
}

func closeApp() {
	if app.Database != nil {
		if err := app.Database.Close(); err != nil {
			app.Logger.Warn("Failed to close database", zap.Error(err))
		}
		app.Database = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}
