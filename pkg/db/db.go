package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/sheetssql"
)

// DB provides database operations using SheetsSQL
type DB struct {
	ssql *sheetssql.DB
}

// NewDB wraps an open SheetsSQL database
func NewDB(ssql *sheetssql.DB) *DB {
	return &DB{
		ssql: ssql,
	}
}

// Open connects to the spreadsheet and creates the project tab if it is missing
func Open(ctx context.Context, client sheetssql.SheetsClient, spreadsheetID string) (*DB, error) {
	schema, err := sheetssql.SchemaFromModels(ProjectRow{})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	ssql, err := sheetssql.NewDB(ctx, client, spreadsheetID, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheets database: %w", err)
	}

	return NewDB(ssql), nil
}

// Close is a no-op; the spreadsheet holds no connection
func (db *DB) Close() error {
	return nil
}

// SortByCreation orders projects by submission time, ties broken by ID.
// CreatedAt uses model.TimestampLayout so lexical order is chronological.
func SortByCreation(projects []model.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].CreatedAt != projects[j].CreatedAt {
			return projects[i].CreatedAt < projects[j].CreatedAt
		}
		return projects[i].ID < projects[j].ID
	})
}
