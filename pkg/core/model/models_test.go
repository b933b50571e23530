package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProject_AnswerRoundTrip(t *testing.T) {
	var p Project
	for i, c := range Criteria {
		p.SetAnswer(c, string(rune('a'+i)))
	}

	assert.Equal(t, "a", p.Alignment)
	assert.Equal(t, "b", p.EBITDAImpact)
	assert.Equal(t, "c", p.Complexity)
	assert.Equal(t, "d", p.Cost)
	assert.Equal(t, "e", p.Engagement)
	assert.Equal(t, "f", p.VendorDependency)

	for i, c := range Criteria {
		assert.Equal(t, string(rune('a'+i)), p.Answer(c))
	}
}

func TestCriterion_IsValid(t *testing.T) {
	assert.True(t, CriterionCost.IsValid())
	assert.False(t, Criterion("budget").IsValid())
	assert.Equal(t, "", Project{Cost: "x"}.Answer(Criterion("budget")))
}

func TestFormatTimestamp_FixedWidthUTC(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)

	assert.Equal(t, "2025-03-01T15:30:00.000000Z", FormatTimestamp(time.Date(2025, 3, 1, 12, 30, 0, 0, brt)))

	early := FormatTimestamp(time.Date(2025, 3, 1, 12, 30, 0, 900_000_000, time.UTC))
	late := FormatTimestamp(time.Date(2025, 3, 1, 12, 30, 1, 0, time.UTC))
	assert.Len(t, late, len(early))
	assert.Less(t, early, late)
}
