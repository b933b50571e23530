package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
)

// projectWithScores builds a project whose descriptions have the given raw scores
func projectWithScores(t *testing.T, name string, scores map[model.Criterion]int) model.Project {
	t.Helper()

	p := model.Project{ID: name, Name: name}
	for _, c := range model.Criteria {
		s, err := ScaleFor(c)
		require.NoError(t, err)

		score := 3
		if v, ok := scores[c]; ok {
			score = v
		}
		option, err := s.Option(score)
		require.NoError(t, err)
		p.SetAnswer(c, option)
	}
	return p
}

func quickWinProject() model.Project {
	return model.Project{
		ID:               "p-1",
		Name:             "Churn dashboard",
		Alignment:        "Atende diretamente um objetivo estratégico prioritário",
		EBITDAImpact:     "Aumento de receita ou economia > R$ 500k/ano",
		Complexity:       "Requer pequenas transformações ou integrações",
		Cost:             "Exige até 1 mês com recursos existentes",
		Engagement:       "Existe Data Owner claro e colaborativo",
		VendorDependency: "Nenhum fornecedor envolvido. Tudo interno",
	}
}

func TestScore_ConcreteScenario(t *testing.T) {
	scored, err := Score(quickWinProject())
	require.NoError(t, err)

	assert.Equal(t, CriterionScores{
		Alignment:          4,
		EBITDAImpact:       4,
		Complexity:         2,
		Cost:               2,
		Engagement:         4,
		EngagementInverted: 2,
		VendorDependency:   1,
	}, scored.Scores)
	assert.Equal(t, 4.0, scored.ImpactScore)
	assert.Equal(t, 1.75, scored.EffortScore)

	classified := Classify(scored, DefaultCutoff())
	assert.Equal(t, QuickWins, classified.Classification)
}

func TestScore_KeepsRawProject(t *testing.T) {
	p := quickWinProject()
	p.IsLegalDemand = true
	p.Source = model.SourceCLI

	scored, err := Score(p)
	require.NoError(t, err)
	assert.Equal(t, p, scored.Project)
}

func TestScore_EngagementInversion(t *testing.T) {
	tests := []struct {
		raw      int
		inverted int
	}{
		{1, 5},
		{2, 4},
		{3, 3},
		{4, 2},
		{5, 1},
	}

	for _, tt := range tests {
		p := projectWithScores(t, "engagement", map[model.Criterion]int{model.CriterionEngagement: tt.raw})

		scored, err := Score(p)
		require.NoError(t, err)
		assert.Equal(t, tt.raw, scored.Scores.Engagement)
		assert.Equal(t, tt.inverted, scored.Scores.EngagementInverted)
		assert.Equal(t, 6-tt.raw, scored.Scores.EngagementInverted)
	}
}

func TestScore_AxesStayWithinScale(t *testing.T) {
	// Every combination of extremes plus the midpoint keeps both axes inside [1, 5]
	values := []int{1, 3, 5}
	for _, a := range values {
		for _, e := range values {
			for _, c := range values {
				for _, g := range values {
					p := projectWithScores(t, "bounds", map[model.Criterion]int{
						model.CriterionAlignment:        a,
						model.CriterionEBITDAImpact:     e,
						model.CriterionComplexity:       c,
						model.CriterionCost:             c,
						model.CriterionEngagement:       g,
						model.CriterionVendorDependency: a,
					})
					scored, err := Score(p)
					require.NoError(t, err)

					assert.GreaterOrEqual(t, scored.ImpactScore, 1.0)
					assert.LessOrEqual(t, scored.ImpactScore, 5.0)
					assert.GreaterOrEqual(t, scored.EffortScore, 1.0)
					assert.LessOrEqual(t, scored.EffortScore, 5.0)
				}
			}
		}
	}
}

func TestScore_ExtremeEffort(t *testing.T) {
	easiest := projectWithScores(t, "easy", map[model.Criterion]int{
		model.CriterionComplexity:       1,
		model.CriterionCost:             1,
		model.CriterionEngagement:       5,
		model.CriterionVendorDependency: 1,
	})
	scored, err := Score(easiest)
	require.NoError(t, err)
	assert.Equal(t, 1.0, scored.EffortScore)

	hardest := projectWithScores(t, "hard", map[model.Criterion]int{
		model.CriterionComplexity:       5,
		model.CriterionCost:             5,
		model.CriterionEngagement:       1,
		model.CriterionVendorDependency: 5,
	})
	scored, err = Score(hardest)
	require.NoError(t, err)
	assert.Equal(t, 5.0, scored.EffortScore)
}

func TestScore_UnknownCategory(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *model.Project)
		criterion model.Criterion
	}{
		{"alignment typo", func(p *model.Project) { p.Alignment = "Alinhado" }, model.CriterionAlignment},
		{"ebitda empty", func(p *model.Project) { p.EBITDAImpact = "" }, model.CriterionEBITDAImpact},
		{"complexity wrong case", func(p *model.Project) {
			p.Complexity = "requer pequenas transformações ou integrações"
		}, model.CriterionComplexity},
		{"cost from another scale", func(p *model.Project) {
			p.Cost = "Nenhum fornecedor envolvido. Tudo interno"
		}, model.CriterionCost},
		{"engagement", func(p *model.Project) { p.Engagement = "Muito engajado" }, model.CriterionEngagement},
		{"vendor", func(p *model.Project) { p.VendorDependency = "?" }, model.CriterionVendorDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := quickWinProject()
			tt.mutate(&p)

			scored, err := Score(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownCategory))
			assert.Equal(t, ScoredProject{}, scored, "no partially scored record")

			var catErr *UnknownCategoryError
			require.True(t, errors.As(err, &catErr))
			assert.Equal(t, tt.criterion, catErr.Criterion)
			assert.Equal(t, p.Answer(tt.criterion), catErr.Value)
			assert.Contains(t, err.Error(), string(tt.criterion))
		})
	}
}
