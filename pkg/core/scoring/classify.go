package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// Classification is the priority bucket a project falls into
type Classification string

const (
	LegalPriority Classification = "LegalPriority"
	QuickWins     Classification = "QuickWins"
	MajorProjects Classification = "MajorProjects"
	QuickProjects Classification = "QuickProjects"
	Reevaluate    Classification = "Reevaluate"
)

// Classifications lists every bucket in decision order
var Classifications = []Classification{LegalPriority, QuickWins, MajorProjects, QuickProjects, Reevaluate}

var classificationLabels = map[Classification]string{
	LegalPriority: "Prioridade Legal",
	QuickWins:     "Ganhos Rápidos",
	MajorProjects: "Projetos Maiores",
	QuickProjects: "Projetos Rápidos",
	Reevaluate:    "Reavaliar",
}

var classificationColors = map[Classification]string{
	LegalPriority: "#8A2BE2",
	QuickWins:     "#32CD32",
	MajorProjects: "#1E90FF",
	QuickProjects: "#FFD700",
	Reevaluate:    "#FF4500",
}

// Label returns the display label shown to users
func (c Classification) Label() string {
	if label, ok := classificationLabels[c]; ok {
		return label
	}
	return string(c)
}

// Color returns the hex colour used for the bucket in tables and charts
func (c Classification) Color() string {
	if color, ok := classificationColors[c]; ok {
		return color
	}
	return "#808080"
}

// ParseClassification accepts either the identifier or the display label, ignoring case
func ParseClassification(s string) (Classification, error) {
	s = strings.TrimSpace(s)
	for _, c := range Classifications {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid classification: %q", s)
}

// DefaultCutoffValue is the midpoint of the 1..5 scale
const DefaultCutoffValue = 2.5

// Cutoff is the threshold separating low from high on each axis.
// A score equal to the cutoff counts as high.
type Cutoff struct {
	Impact float64
	Effort float64
}

// DefaultCutoff returns the fixed 2.5/2.5 cutoff
func DefaultCutoff() Cutoff {
	return Cutoff{Impact: DefaultCutoffValue, Effort: DefaultCutoffValue}
}

// CutoffPolicy decides how the cutoff for a batch is derived
type CutoffPolicy string

const (
	// CutoffFixed uses a constant cutoff, so a classification depends only on its own record
	CutoffFixed CutoffPolicy = "fixed"
	// CutoffMedian uses the median impact and effort of the whole batch
	CutoffMedian CutoffPolicy = "median"
)

// ClassifiedProject is a scored project with its priority bucket
type ClassifiedProject struct {
	ScoredProject
	Classification Classification
	Cutoff         Cutoff
}

// Classify applies the ordered decision list: legal demand first, then the four quadrants.
// The first matching rule wins.
func Classify(s ScoredProject, cutoff Cutoff) ClassifiedProject {
	highImpact := s.ImpactScore >= cutoff.Impact
	highEffort := s.EffortScore >= cutoff.Effort

	var c Classification
	switch {
	case s.IsLegalDemand:
		c = LegalPriority
	case highImpact && !highEffort:
		c = QuickWins
	case highImpact && highEffort:
		c = MajorProjects
	case !highImpact && !highEffort:
		c = QuickProjects
	default:
		c = Reevaluate
	}

	return ClassifiedProject{
		ScoredProject:  s,
		Classification: c,
		Cutoff:         cutoff,
	}
}

// ClassifyAll classifies a batch under the given policy and returns the cutoff used.
// Under the median policy every score must be known before any record is classified,
// so the cutoff is derived once from the full batch and then applied uniformly.
func ClassifyAll(scored []ScoredProject, policy CutoffPolicy, fixed Cutoff) ([]ClassifiedProject, Cutoff, error) {
	var cutoff Cutoff
	switch policy {
	case CutoffFixed, "":
		cutoff = fixed
	case CutoffMedian:
		cutoff = MedianCutoff(scored, fixed)
	default:
		return nil, Cutoff{}, fmt.Errorf("unknown cutoff policy %q", policy)
	}

	classified := make([]ClassifiedProject, len(scored))
	for i, s := range scored {
		classified[i] = Classify(s, cutoff)
	}
	return classified, cutoff, nil
}

// MedianCutoff returns the sample median of impact and effort across the batch.
// An empty batch yields the fallback cutoff.
func MedianCutoff(scored []ScoredProject, fallback Cutoff) Cutoff {
	if len(scored) == 0 {
		return fallback
	}

	impacts := make([]float64, len(scored))
	efforts := make([]float64, len(scored))
	for i, s := range scored {
		impacts[i] = s.ImpactScore
		efforts[i] = s.EffortScore
	}

	return Cutoff{Impact: median(impacts), Effort: median(efforts)}
}

func median(values []float64) float64 {
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}
