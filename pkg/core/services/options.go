package services

import (
	"strconv"
	"strings"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
	"github.com/jakechorley/project-prioritization/pkg/core/scoring"
)

// ListOptions returns every criterion scale in intake order
func ListOptions() []scoring.Scale {
	return scoring.Scales()
}

// ResolveAnswer turns user input into one of the criterion's fixed descriptions.
// The input is either a 1-based option number or the exact description.
func ResolveAnswer(c model.Criterion, input string) (string, error) {
	scale, err := scoring.ScaleFor(c)
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(input)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return scale.Option(n)
	}

	if _, ok := scale.Score(trimmed); ok {
		return trimmed, nil
	}
	return "", &scoring.UnknownCategoryError{Criterion: c, Value: input}
}
