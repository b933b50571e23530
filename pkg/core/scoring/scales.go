package scoring

import (
	"fmt"

	"github.com/jakechorley/project-prioritization/pkg/core/model"
)

// Axis is one of the two composite dimensions of the prioritisation matrix
type Axis string

const (
	AxisImpact Axis = "impact"
	AxisEffort Axis = "effort"
)

// OptionCount is the number of descriptions every scale holds
const OptionCount = 5

// Scale maps the five fixed descriptions of a criterion to the scores 1..5.
// Options[i] scores i+1.
type Scale struct {
	Criterion model.Criterion
	Title     string
	Axis      Axis
	// Inverted scales express "higher is better" but feed the effort axis, so their
	// score is flipped (6 - raw) before averaging.
	Inverted bool
	Options  [OptionCount]string
}

var scales = []Scale{
	{
		Criterion: model.CriterionAlignment,
		Title:     "Alinhamento estratégico",
		Axis:      AxisImpact,
		Options: [OptionCount]string{
			"Desconectado da estratégia da empresa",
			"Levemente conectado a temas operacionais",
			"Conectado a um objetivo estratégico secundário",
			"Atende diretamente um objetivo estratégico prioritário",
			"É essencial para a execução de uma frente estratégica central",
		},
	},
	{
		Criterion: model.CriterionEBITDAImpact,
		Title:     "Impacto em EBITDA",
		Axis:      AxisImpact,
		Options: [OptionCount]string{
			"Nenhum impacto financeiro estimável",
			"Impacto operacional localizado e difícil de quantificar",
			"Geração de eficiência escalável ou corte de custos moderado",
			"Aumento de receita ou economia > R$ 500k/ano",
			"Impacto financeiro direto, claro, e potencial multimilionário",
		},
	},
	{
		Criterion: model.CriterionComplexity,
		Title:     "Complexidade técnica",
		Axis:      AxisEffort,
		Options: [OptionCount]string{
			"Solução simples, com dados e lógica prontos",
			"Requer pequenas transformações ou integrações",
			"Demanda uso de modelos básicos, múltiplas fontes",
			"Envolve arquitetura complexa, pipelines robustos",
			"Alto risco técnico, dependência de tecnologias emergentes",
		},
	},
	{
		Criterion: model.CriterionCost,
		Title:     "Custo (Tempo e Recursos)",
		Axis:      AxisEffort,
		Options: [OptionCount]string{
			"Entregável em até 2 semanas com equipe atual",
			"Exige até 1 mês com recursos existentes",
			"Precisa de squad dedicado por mais de 1 mês",
			"Necessita orçamento adicional, contratação ou serviços externos",
			"Alto custo recorrente e/ou necessidade de aquisição relevante",
		},
	},
	{
		Criterion: model.CriterionEngagement,
		Title:     "Engajamento da Área Requisitante",
		Axis:      AxisEffort,
		Inverted:  true,
		Options: [OptionCount]string{
			"Área requisitante ausente ou passiva",
			"Pouco engajamento, sem interlocutor fixo",
			"Engajamento esporádico e reativo",
			"Existe Data Owner claro e colaborativo",
			"Cocriação ativa com liderança da área e patrocínio executivo",
		},
	},
	{
		Criterion: model.CriterionVendorDependency,
		Title:     "Dependência de Fornecedores",
		Axis:      AxisEffort,
		Options: [OptionCount]string{
			"Nenhum fornecedor envolvido. Tudo interno",
			"Fornecedor envolvido, mas contrato vigente e serviços maduros",
			"Alguma dependência de entregas de terceiros, com SLA razoável",
			"Dependência crítica de fornecedor específico, sem redundância",
			"Fornecedores múltiplos, novos ou instáveis, com risco de travamento",
		},
	},
}

// Scales returns a copy of every scale in intake form order
func Scales() []Scale {
	out := make([]Scale, len(scales))
	copy(out, scales)
	return out
}

// ScaleFor returns the scale of a criterion
func ScaleFor(c model.Criterion) (Scale, error) {
	for _, s := range scales {
		if s.Criterion == c {
			return s, nil
		}
	}
	return Scale{}, fmt.Errorf("unknown criterion %q", c)
}

// Score returns the 1..5 score of a description. Matching is exact and case-sensitive.
func (s Scale) Score(description string) (int, bool) {
	for i, option := range s.Options {
		if option == description {
			return i + 1, true
		}
	}
	return 0, false
}

// Option returns the description that scores the given value
func (s Scale) Option(score int) (string, error) {
	if score < 1 || score > OptionCount {
		return "", fmt.Errorf("score for %s must be between 1 and %d, got %d", s.Criterion, OptionCount, score)
	}
	return s.Options[score-1], nil
}
