package sheetssql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestSubmission struct {
	ID       string `ssql_header:"id" ssql_type:"uuid"`
	Title    string `ssql_header:"title" ssql_type:"text"`
	Priority int    `ssql_header:"priority" ssql_type:"int"`
}

type TestReviewNote struct {
	ID           string `ssql_header:"id" ssql_type:"uuid"`
	SubmissionID string `ssql_header:"submission_id" ssql_type:"uuid"`
	Author       string `ssql_header:"author" ssql_type:"text"`
	Body         string `ssql_header:"body" ssql_type:"text"`
	Urgent       bool   `ssql_header:"urgent" ssql_type:"bool"`
}

type namedRow struct {
	ID string `ssql_header:"id" ssql_type:"uuid"`
}

func (namedRow) TableName() string { return "named" }

func TestSchemaFromModels_SingleModel(t *testing.T) {
	schema, err := SchemaFromModels(TestSubmission{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 1)
	table := schema.Tables[0]

	assert.Equal(t, "test_submission", table.Name)
	assert.Equal(t, []Column{
		{Name: "id", Type: "uuid"},
		{Name: "title", Type: "text"},
		{Name: "priority", Type: "int"},
	}, table.Columns)
}

func TestSchemaFromModels_MultipleModels(t *testing.T) {
	schema, err := SchemaFromModels(TestSubmission{}, TestReviewNote{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 2)
	assert.Equal(t, "test_submission", schema.Tables[0].Name)
	assert.Len(t, schema.Tables[0].Columns, 3)
	assert.Equal(t, "test_review_note", schema.Tables[1].Name)
	assert.Len(t, schema.Tables[1].Columns, 5)
}

func TestSchemaFromModels_WithPointer(t *testing.T) {
	schema, err := SchemaFromModels(&TestSubmission{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 1)
	assert.Equal(t, "test_submission", schema.Tables[0].Name)
}

func TestSchemaFromModels_TableNamer(t *testing.T) {
	schema, err := SchemaFromModels(namedRow{})
	require.NoError(t, err)
	assert.Equal(t, "named", schema.Tables[0].Name)
}

func TestSchemaFromModels_MissingSheetTag(t *testing.T) {
	type InvalidModel struct {
		ID string `ssql_type:"uuid"`
	}

	_, err := SchemaFromModels(InvalidModel{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing 'ssql_header' tag")
}

func TestSchemaFromModels_MissingTypeTag(t *testing.T) {
	type InvalidModel struct {
		ID string `ssql_header:"id"`
	}

	_, err := SchemaFromModels(InvalidModel{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing 'ssql_type' tag")
}

func TestSchemaFromModels_NotAStruct(t *testing.T) {
	_, err := SchemaFromModels("not a struct")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a struct")
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"TestSubmission", "test_submission"},
		{"ProjectRow", "project_row"},
		{"UUID", "u_u_i_d"},
		{"simple", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, toSnakeCase(tt.input))
		})
	}
}

func TestNewDB_CreatesMissingTables(t *testing.T) {
	client := newFakeSheetsClient()
	schema, err := SchemaFromModels(TestSubmission{})
	require.NoError(t, err)

	_, err = NewDB(context.Background(), client, "sheet-1", schema)
	require.NoError(t, err)

	require.Contains(t, client.tabs, "test_submission")
	assert.Equal(t, [][]interface{}{
		{"id", "title", "priority"},
		{"uuid", "text", "int"},
	}, client.tabs["test_submission"])
}

func TestNewDB_AcceptsMatchingTable(t *testing.T) {
	client := newFakeSheetsClient()
	client.tabs["test_submission"] = [][]interface{}{
		{"id", "title", "priority"},
		{"uuid", "text", "int"},
		{"1", "existing", "2"},
	}
	schema, err := SchemaFromModels(TestSubmission{})
	require.NoError(t, err)

	_, err = NewDB(context.Background(), client, "sheet-1", schema)
	require.NoError(t, err)
	assert.Equal(t, 0, client.created)
	assert.Len(t, client.tabs["test_submission"], 3)
}

func TestNewDB_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]interface{}
		contains string
	}{
		{
			name:     "missing type row",
			rows:     [][]interface{}{{"id", "title", "priority"}},
			contains: "missing header or type row",
		},
		{
			name:     "wrong column count",
			rows:     [][]interface{}{{"id", "title"}, {"uuid", "text"}},
			contains: "expected 3 columns, found 2",
		},
		{
			name:     "renamed header",
			rows:     [][]interface{}{{"id", "name", "priority"}, {"uuid", "text", "int"}},
			contains: "expected header 'title'",
		},
		{
			name:     "changed type",
			rows:     [][]interface{}{{"id", "title", "priority"}, {"uuid", "text", "float"}},
			contains: "expected type 'int'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeSheetsClient()
			client.tabs["test_submission"] = tt.rows
			schema, err := SchemaFromModels(TestSubmission{})
			require.NoError(t, err)

			_, err = NewDB(context.Background(), client, "sheet-1", schema)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema mismatch")
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestNewDB_ListSheetsFails(t *testing.T) {
	client := newFakeSheetsClient()
	client.titlesErr = errors.New("quota exceeded")
	schema, err := SchemaFromModels(TestSubmission{})
	require.NoError(t, err)

	_, err = NewDB(context.Background(), client, "sheet-1", schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
