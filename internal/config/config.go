package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// PostgresURLEnv holds the Postgres connection string; it is never read from the YAML file
const PostgresURLEnv = "PRIORITIZATION_POSTGRES_URL"

// Storage backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
)

const (
	DefaultSQLitePath = "projetos.db"
	DefaultMatrixTab  = "Matriz de Priorização"
	DefaultLogsDir    = "logs"
	DefaultCutoff     = 2.5
)

// CutoffConfig selects how the Impact/Effort thresholds are chosen
type CutoffConfig struct {
	Policy string  `yaml:"policy,omitempty" validate:"omitempty,oneof=fixed median"`
	Value  float64 `yaml:"value,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// ReportConfig controls the emailed prioritisation summary
type ReportConfig struct {
	Recipients     []string `yaml:"recipients,omitempty" validate:"omitempty,dive,email"`
	Sender         string   `yaml:"sender,omitempty" validate:"omitempty,email"`
	ReviewSchedule string   `yaml:"reviewSchedule,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Backend         string       `yaml:"backend" validate:"required,oneof=sqlite postgres sheets"`
	SQLitePath      string       `yaml:"sqlitePath,omitempty"`
	PostgresURL     string       `yaml:"-" validate:"required_if=Backend postgres"`
	DatabaseSheetID string       `yaml:"databaseSheetID,omitempty" validate:"required_if=Backend sheets"`
	MatrixSheetID   string       `yaml:"matrixSheetID,omitempty"`
	MatrixTab       string       `yaml:"matrixTab,omitempty"`
	IntakeFormID    string       `yaml:"intakeFormID,omitempty"`
	Cutoff          CutoffConfig `yaml:"cutoff,omitempty"`
	Report          ReportConfig `yaml:"report,omitempty"`
	LogsDir         string       `yaml:"logsDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads the default environment's configuration
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads .env secrets and prioritization_config.<env>.yaml (or prioritization_config.yaml
// when env is empty) from the current directory or the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	if err := LoadDotEnv(env); err != nil {
		return nil, err
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadDotEnv loads .env.<env> then .env into the process environment.
// Missing files are ignored and variables already set are never overwritten.
func LoadDotEnv(env string) error {
	files := []string{".env"}
	if env != "" {
		files = []string{".env." + env, ".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadFromPath loads, defaults and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.PostgresURL = os.Getenv(PostgresURLEnv)
	cfg.ApplyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills optional fields left empty
func (c *Config) ApplyDefaults() {
	if c.SQLitePath == "" {
		c.SQLitePath = DefaultSQLitePath
	}
	if c.MatrixTab == "" {
		c.MatrixTab = DefaultMatrixTab
	}
	if c.LogsDir == "" {
		c.LogsDir = DefaultLogsDir
	}
	if c.Cutoff.Policy == "" {
		c.Cutoff.Policy = "fixed"
	}
	if c.Cutoff.Value == 0 {
		c.Cutoff.Value = DefaultCutoff
	}
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Report.ReviewSchedule != "" {
		if _, err := rrule.StrToRRule(cfg.Report.ReviewSchedule); err != nil {
			return fmt.Errorf("invalid rrule in report.reviewSchedule: %w", err)
		}
	}

	return nil
}

// NextReview returns the first scheduled review strictly after the given time.
// A schedule without DTSTART is anchored at the given time.
// ok is false when no schedule is configured or the schedule has ended.
func (c *Config) NextReview(after time.Time) (next time.Time, ok bool, err error) {
	if c.Report.ReviewSchedule == "" {
		return time.Time{}, false, nil
	}

	rule, err := rrule.StrToRRule(c.Report.ReviewSchedule)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid rrule in report.reviewSchedule: %w", err)
	}
	if rule.OrigOptions.Dtstart.IsZero() {
		rule.DTStart(after)
	}

	next = rule.After(after, false)
	return next, !next.IsZero(), nil
}

// findConfigFile returns prioritization_config[.<env>].yaml from the current or home directory
func findConfigFile(env string) (string, error) {
	name := "prioritization_config.yaml"
	if env != "" {
		name = "prioritization_config." + env + ".yaml"
	}
	return findFile(name)
}

// findFile looks for name in the current directory, then in the user's home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
