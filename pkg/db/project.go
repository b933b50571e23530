package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/sheetssql"
)

// ProjectTable is the tab (and relational table) holding raw project submissions
const ProjectTable = "project"

// ProjectRow is the stored form of a project: raw answers only, never derived scores
type ProjectRow struct {
	ID               string `ssql_header:"id" ssql_type:"uuid"`
	Name             string `ssql_header:"name" ssql_type:"text"`
	IsLegalDemand    bool   `ssql_header:"is_legal_demand" ssql_type:"bool"`
	Alignment        string `ssql_header:"alignment" ssql_type:"text"`
	EBITDAImpact     string `ssql_header:"ebitda_impact" ssql_type:"text"`
	Complexity       string `ssql_header:"complexity" ssql_type:"text"`
	Cost             string `ssql_header:"cost" ssql_type:"text"`
	Engagement       string `ssql_header:"engagement" ssql_type:"text"`
	VendorDependency string `ssql_header:"vendor_dependency" ssql_type:"text"`
	CreatedAt        string `ssql_header:"created_at" ssql_type:"timestamp"`
	Source           string `ssql_header:"source" ssql_type:"text"`
}

func (ProjectRow) TableName() string { return ProjectTable }

// ProjectRowFrom converts a project to its stored form
func ProjectRowFrom(p *model.Project) ProjectRow {
	return ProjectRow{
		ID:               p.ID,
		Name:             p.Name,
		IsLegalDemand:    p.IsLegalDemand,
		Alignment:        p.Alignment,
		EBITDAImpact:     p.EBITDAImpact,
		Complexity:       p.Complexity,
		Cost:             p.Cost,
		Engagement:       p.Engagement,
		VendorDependency: p.VendorDependency,
		CreatedAt:        p.CreatedAt,
		Source:           p.Source,
	}
}

// Project converts a stored row back to a project
func (r ProjectRow) Project() model.Project {
	return model.Project{
		ID:               r.ID,
		Name:             r.Name,
		IsLegalDemand:    r.IsLegalDemand,
		Alignment:        r.Alignment,
		EBITDAImpact:     r.EBITDAImpact,
		Complexity:       r.Complexity,
		Cost:             r.Cost,
		Engagement:       r.Engagement,
		VendorDependency: r.VendorDependency,
		CreatedAt:        r.CreatedAt,
		Source:           r.Source,
	}
}

// GetProjects retrieves all project records in submission order
func (db *DB) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := sheetssql.GetTableAs[ProjectRow](ctx, db.ssql, ProjectTable)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	projects := make([]model.Project, len(rows))
	for i, r := range rows {
		projects[i] = r.Project()
	}
	SortByCreation(projects)

	return projects, nil
}

// InsertProject appends a new project record
func (db *DB) InsertProject(ctx context.Context, project *model.Project) error {
	if err := sheetssql.InsertModel(ctx, db.ssql, ProjectRowFrom(project)); err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}
