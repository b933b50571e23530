package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
)

//go:embed sql/ddl.sql
var ddlFS embed.FS

// DB provides project storage in a local SQLite file
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the database file at path and applies the schema
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path not specified")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// SQLite allows a single writer
	conn.SetMaxOpenConns(1)

	ddl, err := ddlFS.ReadFile("sql/ddl.sql")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read the schema creation file: %w", err)
	}
	if _, err := conn.ExecContext(ctx, string(ddl)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create database schema in %s: %w", path, err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database file
func (db *DB) Close() error {
	return db.conn.Close()
}

// GetProjects retrieves all project records in submission order
func (db *DB) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, is_legal_demand, alignment, ebitda_impact, complexity,
		       cost, engagement, vendor_dependency, created_at, source
		FROM project
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.IsLegalDemand, &p.Alignment, &p.EBITDAImpact, &p.Complexity,
			&p.Cost, &p.Engagement, &p.VendorDependency, &p.CreatedAt, &p.Source,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// InsertProject inserts a new project record
func (db *DB) InsertProject(ctx context.Context, project *model.Project) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO project (id, name, is_legal_demand, alignment, ebitda_impact, complexity,
		                     cost, engagement, vendor_dependency, created_at, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, project.ID, project.Name, project.IsLegalDemand, project.Alignment, project.EBITDAImpact,
		project.Complexity, project.Cost, project.Engagement, project.VendorDependency,
		project.CreatedAt, project.Source)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}
