package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakechorley/project-prioritization/pkg/core/matrix"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	lineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func classStyle(c scoring.Classification) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color())).Bold(true)
}

// padRight pads to a display width, counting runes
func padRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// renderTable lists name, legal flag, impact, effort and classification, scores to two decimals
func renderTable(projects []scoring.ClassifiedProject) string {
	const nameWidth = 40

	columns := []string{"Nome do Projeto", "Demanda Legal", "Nota Impacto", "Nota Esforço", "Classificação"}
	widths := []int{nameWidth, 13, 12, 12, 0}

	var b strings.Builder
	for i, col := range columns {
		b.WriteString(headerStyle.Render(padRight(col, widths[i])))
		if i < len(columns)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, p := range projects {
		legal := "Não"
		if p.IsLegalDemand {
			legal = "Sim"
		}
		b.WriteString(padRight(truncate(p.Name, nameWidth), widths[0]))
		b.WriteString("  ")
		b.WriteString(padRight(legal, widths[1]))
		b.WriteString("  ")
		b.WriteString(padRight(fmt.Sprintf("%.2f", p.ImpactScore), widths[2]))
		b.WriteString("  ")
		b.WriteString(padRight(fmt.Sprintf("%.2f", p.EffortScore), widths[3]))
		b.WriteString("  ")
		b.WriteString(classStyle(p.Classification).Render(p.Classification.Label()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSummary prints the count per bucket in decision order
func renderSummary(counts map[scoring.Classification]int, cutoff scoring.Cutoff) string {
	var b strings.Builder
	for _, c := range scoring.Classifications {
		fmt.Fprintf(&b, "  %s %d\n", classStyle(c).Render(padRight(c.Label(), 18)), counts[c])
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Corte: impacto %.2f, esforço %.2f", cutoff.Impact, cutoff.Effort)))
	b.WriteString("\n")
	return b.String()
}

// renderMatrix draws the chart with a y axis of impact, an x axis of effort and a legend of plotted points
func renderMatrix(chart *matrix.Chart, points []matrix.Point, cutoff scoring.Cutoff) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Impacto →"))
	b.WriteString("\n")

	for r, cells := range chart.Cells {
		axis := "    "
		switch r {
		case 0:
			axis = fmt.Sprintf("%.1f", matrix.AxisMax)
		case chart.CutoffRow:
			axis = fmt.Sprintf("%.1f", cutoff.Impact)
		case chart.Height - 1:
			axis = "0.0"
		}
		b.WriteString(dimStyle.Render(padRight(axis, 4)))
		b.WriteString("│")
		for _, cell := range cells {
			b.WriteString(renderCell(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString("    └")
	b.WriteString(strings.Repeat("─", chart.Width))
	b.WriteString("\n")
	b.WriteString(padRight("", 5))
	b.WriteString(dimStyle.Render(padRight("0.0", chart.CutoffCol)))
	b.WriteString(dimStyle.Render(padRight(fmt.Sprintf("%.1f", cutoff.Effort), chart.Width-chart.CutoffCol-3)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("%.1f", matrix.AxisMax)))
	b.WriteString("\n")
	b.WriteString(padRight("", 5+chart.Width-9))
	b.WriteString(dimStyle.Render("Esforço →"))
	b.WriteString("\n\n")

	for i, p := range points {
		marker := string(matrix.Marker(i))
		fmt.Fprintf(&b, "  %s %s %s\n",
			classStyle(p.Classification).Render(marker),
			p.Name,
			dimStyle.Render(fmt.Sprintf("(esforço %.2f, impacto %.2f, %s)", p.X, p.Y, p.Classification.Label())))
	}
	return b.String()
}

func renderCell(cell matrix.Cell) string {
	glyph := string(cell.Glyph)
	switch {
	case cell.Classification != "":
		return classStyle(cell.Classification).Render(glyph)
	case cell.Label:
		return dimStyle.Render(glyph)
	case cell.Glyph == matrix.GlyphEmpty:
		return glyph
	default:
		return lineStyle.Render(glyph)
	}
}
