package db

import (
	"context"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
)

// ProjectStore defines the persistence operations the services need
type ProjectStore interface {
	InsertProject(ctx context.Context, project *model.Project) error
	GetProjects(ctx context.Context) ([]model.Project, error)
}

// Database is a ProjectStore that owns a connection.
// The SheetsSQL-backed db.DB, postgres.DB and sqlite.DB implement this interface.
type Database interface {
	ProjectStore
	Close() error
}
