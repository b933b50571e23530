package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTable() *PublishedTable {
	return &PublishedTable{
		Preamble: [headerRow]string{"Atualizado em 2025-03-01 10:00", "Corte: impacto 2.50, esforço 2.50"},
		Header:   []string{"ID", "Projeto", "Classificação"},
		Rows: [][]interface{}{
			{"p-2", "Compliance feed", "Prioridade Legal"},
			{"p-1", "Churn dashboard", "Ganhos Rápidos"},
		},
	}
}

func TestMergeTable_NewTab(t *testing.T) {
	got := mergeTable(nil, sampleTable())

	assert.Equal(t, [][]interface{}{
		{"Atualizado em 2025-03-01 10:00"},
		{"Corte: impacto 2.50, esforço 2.50"},
		{"ID", "Projeto", "Classificação"},
		{"p-2", "Compliance feed", "Prioridade Legal"},
		{"p-1", "Churn dashboard", "Ganhos Rápidos"},
	}, got)
}

func TestMergeTable_KeepsHandAddedColumnsByKey(t *testing.T) {
	existing := [][]interface{}{
		{"Atualizado em 2025-02-01 09:00"},
		{},
		{"ID", "Projeto", "Classificação", "Responsável", "Comentários"},
		{"p-1", "Churn dashboard", "Reavaliar", "Ana", "aguardando orçamento"},
		{"p-9", "Removed project", "Reavaliar", "Rui", "cancelado"},
	}

	got := mergeTable(existing, sampleTable())

	assert.Equal(t, []interface{}{"ID", "Projeto", "Classificação", "Responsável", "Comentários"}, got[2])
	// p-2 is new: blank extras
	assert.Equal(t, []interface{}{"p-2", "Compliance feed", "Prioridade Legal", "", ""}, got[3])
	// p-1 moved down one row and keeps its notes
	assert.Equal(t, []interface{}{"p-1", "Churn dashboard", "Ganhos Rápidos", "Ana", "aguardando orçamento"}, got[4])
	// rows for projects no longer published are dropped
	assert.Len(t, got, 5)
}

func TestMergeTable_IgnoresPublishedColumnsAndBlankHeaders(t *testing.T) {
	existing := [][]interface{}{
		{}, {},
		{"ID", "Projeto", "Classificação", "", "Projeto"},
		{"p-1", "old", "old", "x", "y"},
	}

	got := mergeTable(existing, sampleTable())
	assert.Equal(t, []interface{}{"ID", "Projeto", "Classificação"}, got[2])
	assert.Equal(t, []interface{}{"p-1", "Churn dashboard", "Ganhos Rápidos"}, got[4])
}

func TestMergeTable_PadsShortRows(t *testing.T) {
	table := &PublishedTable{
		Header: []string{"ID", "Projeto", "Classificação"},
		Rows:   [][]interface{}{{"p-1"}},
	}

	got := mergeTable(nil, table)
	assert.Equal(t, []interface{}{"p-1", "", ""}, got[3])
	assert.Equal(t, []interface{}{""}, got[0])
}

func TestA1(t *testing.T) {
	assert.Equal(t, "'Matriz de Priorização'!A1", a1("Matriz de Priorização", "A1"))
	assert.Equal(t, "'Bob''s tab'!A1:ZZ", a1("Bob's tab", "A1:ZZ"))
}
