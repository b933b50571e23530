package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/project-prioritization/internal/config"
	"github.com/jakechorley/project-prioritization/pkg/clients/formsclient"
	"github.com/jakechorley/project-prioritization/pkg/clients/gmailclient"
	"github.com/jakechorley/project-prioritization/pkg/clients/sheetsclient"
	"github.com/jakechorley/project-prioritization/pkg/db"
	"github.com/jakechorley/project-prioritization/pkg/postgres"
	"github.com/jakechorley/project-prioritization/pkg/sqlite"
)

// AppContext holds the application dependencies shared across all commands.
// Google clients are created on first use so local backends never start an OAuth flow.
type AppContext struct {
	Cfg      *config.Config
	Env      string
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	Out      io.Writer
	In       io.Reader

	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	formsClient  *formsclient.Client
	gmailClient  *gmailclient.Client

	// set while the interactive session owns stdin
	inSession bool
}

func (app *AppContext) out() io.Writer {
	if app.Out == nil {
		return os.Stdout
	}
	return app.Out
}

func (app *AppContext) in() io.Reader {
	if app.In == nil {
		return os.Stdin
	}
	return app.In
}

func (app *AppContext) loadOAuthConfig() (*config.OAuthClientConfig, error) {
	if app.oauthCfg != nil {
		return app.oauthCfg, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	cfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.oauthCfg = cfg
	return cfg, nil
}

// SheetsClient returns the Sheets client, authenticating on first use
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	oauthCfg, err := app.loadOAuthConfig()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.sheetsClient = client
	return client, nil
}

// FormsClient returns the Forms client, sharing the Sheets client's token
func (app *AppContext) FormsClient() (*formsclient.Client, error) {
	if app.formsClient != nil {
		return app.formsClient, nil
	}

	sheets, err := app.SheetsClient()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing forms client")
	client, err := formsclient.NewClient(app.Ctx, app.oauthCfg, sheets.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create forms client: %w", err)
	}
	app.formsClient = client
	return client, nil
}

// GmailClient returns the Gmail client, sharing the Sheets client's token
func (app *AppContext) GmailClient() (*gmailclient.Client, error) {
	if app.gmailClient != nil {
		return app.gmailClient, nil
	}

	sheets, err := app.SheetsClient()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(app.Ctx, app.oauthCfg, sheets.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.gmailClient = client
	return client, nil
}

// OpenDatabase opens the storage backend selected in the configuration
func OpenDatabase(app *AppContext) (db.Database, error) {
	switch app.Cfg.Backend {
	case config.BackendSQLite:
		app.Logger.Info("Opening SQLite database", zap.String("path", app.Cfg.SQLitePath))
		database, err := sqlite.Open(app.Ctx, app.Cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return database, nil

	case config.BackendPostgres:
		app.Logger.Info("Connecting to PostgreSQL")
		database, err := postgres.Open(app.Ctx, app.Cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return database, nil

	case config.BackendSheets:
		client, err := app.SheetsClient()
		if err != nil {
			return nil, err
		}
		app.Logger.Info("Connecting to spreadsheet database", zap.String("spreadsheet_id", app.Cfg.DatabaseSheetID))
		database, err := db.Open(app.Ctx, client, app.Cfg.DatabaseSheetID)
		if err != nil {
			return nil, err
		}
		return database, nil
	}

	return nil, fmt.Errorf("unknown backend %q", app.Cfg.Backend)
}

// noDatabase marks commands that run without opening the storage backend
const noDatabase = "noDatabase"

// NeedsDatabase reports whether the command uses the storage backend
func NeedsDatabase(cmd *cobra.Command) bool {
	return cmd.Annotations[noDatabase] != "true"
}
