package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
)

// GetProjects retrieves all project records in submission order
func (d *DB) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := d.pool.Query(ctx, `
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
		var createdAt time.Time
		if err := rows.Scan(
			&p.ID, &p.Name, &p.IsLegalDemand, &p.Alignment, &p.EBITDAImpact, &p.Complexity,
			&p.Cost, &p.Engagement, &p.VendorDependency, &createdAt, &p.Source,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.CreatedAt = model.FormatTimestamp(createdAt)
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// InsertProject inserts a new project record
func (d *DB) InsertProject(ctx context.Context, project *model.Project) error {
	createdAt, err := time.Parse(time.RFC3339Nano, project.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid created_at %q: %w", project.CreatedAt, err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO project (id, name, is_legal_demand, alignment, ebitda_impact, complexity,
		                     cost, engagement, vendor_dependency, created_at, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, project.ID, project.Name, project.IsLegalDemand, project.Alignment, project.EBITDAImpact,
		project.Complexity, project.Cost, project.Engagement, project.VendorDependency,
		createdAt.UTC(), project.Source)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}
