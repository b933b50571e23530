package model

import "time"

// TimestampLayout is fixed width so lexical order of stored timestamps is chronological
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Criterion identifies one of the six qualitative criteria a project is scored against
type Criterion string

const (
	CriterionAlignment        Criterion = "alignment"
	CriterionEBITDAImpact     Criterion = "ebitda_impact"
	CriterionComplexity       Criterion = "complexity"
	CriterionCost             Criterion = "cost"
	CriterionEngagement       Criterion = "engagement"
	CriterionVendorDependency Criterion = "vendor_dependency"
)

// Criteria lists every criterion in intake form order (impact criteria first, then effort)
var Criteria = []Criterion{
	CriterionAlignment,
	CriterionEBITDAImpact,
	CriterionComplexity,
	CriterionCost,
	CriterionEngagement,
	CriterionVendorDependency,
}

func (c Criterion) IsValid() bool {
	for _, known := range Criteria {
		if c == known {
			return true
		}
	}
	return false
}

// Project is a raw intake submission: a name, the legal flag and one description per criterion.
// Only these fields are persisted; scores and classification are derived on every read.
type Project struct {
	ID               string
	Name             string `validate:"required,max=200"`
	IsLegalDemand    bool
	Alignment        string `validate:"required"`
	EBITDAImpact     string `validate:"required"`
	Complexity       string `validate:"required"`
	Cost             string `validate:"required"`
	Engagement       string `validate:"required"`
	VendorDependency string `validate:"required"`
	CreatedAt        string // TimestampLayout in UTC, set on submission
	Source           string // "cli", "tui" or "form:<responseID>"
}

// Answer returns the description selected for the given criterion
func (p Project) Answer(c Criterion) string {
	switch c {
	case CriterionAlignment:
		return p.Alignment
	case CriterionEBITDAImpact:
		return p.EBITDAImpact
	case CriterionComplexity:
		return p.Complexity
	case CriterionCost:
		return p.Cost
	case CriterionEngagement:
		return p.Engagement
	case CriterionVendorDependency:
		return p.VendorDependency
	}
	return ""
}

// SetAnswer stores the description selected for the given criterion
func (p *Project) SetAnswer(c Criterion, description string) {
	switch c {
	case CriterionAlignment:
		p.Alignment = description
	case CriterionEBITDAImpact:
		p.EBITDAImpact = description
	case CriterionComplexity:
		p.Complexity = description
	case CriterionCost:
		p.Cost = description
	case CriterionEngagement:
		p.Engagement = description
	case CriterionVendorDependency:
		p.VendorDependency = description
	}
}

// Source prefixes
const (
	SourceCLI  = "cli"
	SourceTUI  = "tui"
	SourceForm = "form:"
)
