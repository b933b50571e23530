package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// SheetName is the worksheet holding the detailed matrix
const SheetName = "Priorizacao_Projetos"

// DefaultFileName is used when no output path is given
const DefaultFileName = "matriz_priorizacao_detalhada.xlsx"

// Header returns the workbook columns in order. Criterion columns use the scale titles.
func Header() []string {
	header := []string{"ID", "Nome do Projeto", "Demanda Legal"}
	for _, scale := range scoring.Scales() {
		header = append(header, scale.Title)
	}
	return append(header,
		"score_alinhamento",
		"score_ebitda",
		"score_complexidade",
		"score_custo",
		"score_engajamento",
		"score_engajamento_invertido",
		"score_fornecedor",
		"Nota Impacto",
		"Nota Esforço",
		"Classificação",
		"Criado em",
		"Origem",
	)
}

// Row returns the workbook cells for one classified project.
// Impact and effort are rounded to two decimals; scores stay numeric.
func Row(p scoring.ClassifiedProject) []interface{} {
	return []interface{}{
		p.ID,
		p.Name,
		p.IsLegalDemand,
		p.Alignment,
		p.EBITDAImpact,
		p.Complexity,
		p.Cost,
		p.Engagement,
		p.VendorDependency,
		p.Scores.Alignment,
		p.Scores.EBITDAImpact,
		p.Scores.Complexity,
		p.Scores.Cost,
		p.Scores.Engagement,
		p.Scores.EngagementInverted,
		p.Scores.VendorDependency,
		Round2(p.ImpactScore),
		Round2(p.EffortScore),
		p.Classification.Label(),
		p.CreatedAt,
		p.Source,
	}
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Build creates a workbook with one row per project under a bold, frozen header
func Build(projects []scoring.ClassifiedProject) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	columns := Header()
	header := make([]interface{}, len(columns))
	for i, h := range columns {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range projects {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve cell: %w", err)
		}
		row := Row(p)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row for project %s: %w", p.ID, err)
		}
	}

	if err := styleHeader(f, len(columns)); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func styleHeader(f *excelize.File, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("failed to resolve header range: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	err = f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	return nil
}

// Write streams the workbook to w
func Write(w io.Writer, projects []scoring.ClassifiedProject) error {
	f, err := Build(projects)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook at path
func WriteFile(path string, projects []scoring.ClassifiedProject) error {
	f, err := Build(projects)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
