package matrix

import (
	"math"

	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// AxisMax is the upper bound drawn on both axes, slightly above the maximum score of 5
const AxisMax = 5.1

// Glyphs used on the character grid
const (
	GlyphEmpty      = ' '
	GlyphVertical   = '┆'
	GlyphHorizontal = '┄'
	GlyphCross      = '┼'
	GlyphOverlap    = '*'
	GlyphOverflow   = '•'
)

const markers = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Point is a classified project placed on the matrix: X is effort, Y is impact
type Point struct {
	Name           string
	X              float64
	Y              float64
	Classification scoring.Classification
}

// QuadrantLabel is a fixed label drawn at the centre of a quadrant
type QuadrantLabel struct {
	Classification scoring.Classification
	X              float64
	Y              float64
}

// QuadrantLabels returns the four quadrant labels positioned at the quadrant centres.
// Quadrants span from 0 to the cutoff and from the cutoff to 5 on each axis.
func QuadrantLabels(cutoff scoring.Cutoff) []QuadrantLabel {
	lowX := cutoff.Effort / 2
	highX := cutoff.Effort + (5-cutoff.Effort)/2
	lowY := cutoff.Impact / 2
	highY := cutoff.Impact + (5-cutoff.Impact)/2

	return []QuadrantLabel{
		{Classification: scoring.QuickProjects, X: lowX, Y: lowY},
		{Classification: scoring.Reevaluate, X: highX, Y: lowY},
		{Classification: scoring.QuickWins, X: lowX, Y: highY},
		{Classification: scoring.MajorProjects, X: highX, Y: highY},
	}
}

// PointsFrom converts classified projects into plot points
func PointsFrom(projects []scoring.ClassifiedProject) []Point {
	points := make([]Point, len(projects))
	for i, p := range projects {
		points[i] = Point{
			Name:           p.Name,
			X:              p.EffortScore,
			Y:              p.ImpactScore,
			Classification: p.Classification,
		}
	}
	return points
}

// Marker returns the single-character marker for the i-th point
func Marker(i int) rune {
	if i >= 0 && i < len(markers) {
		return rune(markers[i])
	}
	return GlyphOverflow
}

// Cell is one character of the rendered grid
type Cell struct {
	Glyph rune
	// Classification colours the glyph; empty for lines, labels and overlapping points
	Classification scoring.Classification
	// Label is true for quadrant label text
	Label bool
}

// Chart is the scatter plot laid out on a character grid, row 0 at the top
type Chart struct {
	Width     int
	Height    int
	CutoffCol int
	CutoffRow int
	Cells     [][]Cell
}

// Layout places the cutoff lines, quadrant labels and points on a width x height grid.
// Points are drawn last so they are never hidden; points sharing a cell become an overlap glyph.
func Layout(points []Point, cutoff scoring.Cutoff, width, height int) *Chart {
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}

	chart := &Chart{
		Width:     width,
		Height:    height,
		CutoffCol: columnFor(cutoff.Effort, width),
		CutoffRow: rowFor(cutoff.Impact, height),
		Cells:     make([][]Cell, height),
	}
	for r := range chart.Cells {
		chart.Cells[r] = make([]Cell, width)
		for c := range chart.Cells[r] {
			chart.Cells[r][c] = Cell{Glyph: GlyphEmpty}
		}
	}

	for r := 0; r < height; r++ {
		chart.Cells[r][chart.CutoffCol].Glyph = GlyphVertical
	}
	for c := 0; c < width; c++ {
		if c == chart.CutoffCol {
			chart.Cells[chart.CutoffRow][c].Glyph = GlyphCross
			continue
		}
		chart.Cells[chart.CutoffRow][c].Glyph = GlyphHorizontal
	}

	for _, label := range QuadrantLabels(cutoff) {
		chart.placeLabel(label)
	}

	occupied := make(map[[2]int]bool)
	for i, p := range points {
		row, col := rowFor(p.Y, height), columnFor(p.X, width)
		key := [2]int{row, col}
		if occupied[key] {
			chart.Cells[row][col] = Cell{Glyph: GlyphOverlap}
			continue
		}
		occupied[key] = true
		chart.Cells[row][col] = Cell{Glyph: Marker(i), Classification: p.Classification}
	}

	return chart
}

// placeLabel centres the label text on its anchor, clipped to the grid
func (c *Chart) placeLabel(label QuadrantLabel) {
	text := []rune(label.Classification.Label())
	row := rowFor(label.Y, c.Height)
	start := columnFor(label.X, c.Width) - len(text)/2
	if start < 0 {
		start = 0
	}
	for i, r := range text {
		col := start + i
		if col >= c.Width {
			break
		}
		c.Cells[row][col] = Cell{Glyph: r, Label: true}
	}
}

// Rows returns the chart as plain strings, top row first
func (c *Chart) Rows() []string {
	rows := make([]string, c.Height)
	for r, cells := range c.Cells {
		line := make([]rune, len(cells))
		for i, cell := range cells {
			line[i] = cell.Glyph
		}
		rows[r] = string(line)
	}
	return rows
}

// columnFor maps an effort value to a grid column
func columnFor(x float64, width int) int {
	return clamp(int(math.Round(x/AxisMax*float64(width-1))), 0, width-1)
}

// rowFor maps an impact value to a grid row, with high impact at the top
func rowFor(y float64, height int) int {
	return clamp(height-1-int(math.Round(y/AxisMax*float64(height-1))), 0, height-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
