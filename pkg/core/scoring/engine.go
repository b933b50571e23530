package scoring

import (
	"errors"
	"fmt"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
)

// ErrUnknownCategory is returned when a criterion's description is not one of its five fixed options
var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError names the criterion and the value that failed to match
type UnknownCategoryError struct {
	Criterion model.Criterion
	Value     string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid %s option", ErrUnknownCategory, e.Value, e.Criterion)
}

func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// CriterionScores holds the per-criterion integer scores, each in 1..5
type CriterionScores struct {
	Alignment          int
	EBITDAImpact       int
	Complexity         int
	Cost               int
	Engagement         int // raw score, higher = more engaged requester
	EngagementInverted int // 6 - Engagement, on the effort polarity
	VendorDependency   int
}

// ScoredProject is a project with its per-criterion scores and the two composite axes
type ScoredProject struct {
	model.Project
	Scores      CriterionScores
	ImpactScore float64
	EffortScore float64
}

// Score converts a project's descriptions into scores and computes its impact and effort.
// It fails with ErrUnknownCategory if any description is not in its scale and never returns
// a partially scored project.
func Score(p model.Project) (ScoredProject, error) {
	raw := make(map[model.Criterion]int, len(scales))
	for _, scale := range scales {
		value := p.Answer(scale.Criterion)
		score, ok := scale.Score(value)
		if !ok {
			return ScoredProject{}, &UnknownCategoryError{Criterion: scale.Criterion, Value: value}
		}
		raw[scale.Criterion] = score
	}

	scores := CriterionScores{
		Alignment:          raw[model.CriterionAlignment],
		EBITDAImpact:       raw[model.CriterionEBITDAImpact],
		Complexity:         raw[model.CriterionComplexity],
		Cost:               raw[model.CriterionCost],
		Engagement:         raw[model.CriterionEngagement],
		EngagementInverted: invert(raw[model.CriterionEngagement]),
		VendorDependency:   raw[model.CriterionVendorDependency],
	}

	return ScoredProject{
		Project:     p,
		Scores:      scores,
		ImpactScore: mean(scores.Alignment, scores.EBITDAImpact),
		EffortScore: mean(scores.Complexity, scores.Cost, scores.EngagementInverted, scores.VendorDependency),
	}, nil
}

// invert flips a 1..5 score onto the opposite polarity
func invert(score int) int {
	return OptionCount + 1 - score
}

func mean(values ...int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
