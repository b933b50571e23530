package sheetssql

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// GetTableAs retrieves all rows from a table and maps them to structs of type T.
// The header and type rows are skipped; columns are matched to fields by `ssql_header`.
func GetTableAs[T any](ctx context.Context, db *DB, tableName string) ([]T, error) {
	values, err := db.client.GetValues(ctx, db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) < 3 {
		return []T{}, nil
	}

	headers := values[0]
	dataRows := values[2:]

	var model T
	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	columnIndexes := make(map[string]int, len(headers))
	for i, header := range headers {
		if name, ok := header.(string); ok {
			columnIndexes[name] = i
		}
	}

	fieldMap := make(map[string]reflect.StructField)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if name := field.Tag.Get("ssql_header"); name != "" {
			fieldMap[name] = field
		}
	}

	results := make([]T, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		if isBlankRow(row) {
			continue
		}

		result := reflect.New(t).Elem()
		for columnName, colIdx := range columnIndexes {
			field, ok := fieldMap[columnName]
			if !ok || colIdx >= len(row) || row[colIdx] == nil {
				continue
			}

			if err := setFieldValue(result.FieldByName(field.Name), row[colIdx]); err != nil {
				// +3: 1-based rows plus the header and type rows
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+3, columnName, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if cell != nil && fmt.Sprint(cell) != "" {
			return false
		}
	}
	return true
}

// setFieldValue converts a sheet cell to the field's Go type.
// Cells normally arrive as formatted strings; other values are formatted first.
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr, ok := cellValue.(string)
	if !ok {
		cellStr = fmt.Sprint(cellValue)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cellStr == "" {
			field.SetInt(0)
			return nil
		}
		v, err := strconv.ParseInt(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(v)

	case reflect.Float32, reflect.Float64:
		if cellStr == "" {
			field.SetFloat(0)
			return nil
		}
		v, err := strconv.ParseFloat(cellStr, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float: %w", err)
		}
		field.SetFloat(v)

	case reflect.Bool:
		if cellStr == "" {
			field.SetBool(false)
			return nil
		}
		v, err := strconv.ParseBool(cellStr)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(v)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// rowFromModel flattens the tagged fields of a struct into a sheet row
func rowFromModel(v reflect.Value) []interface{} {
	t := v.Type()
	row := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("ssql_header") == "" {
			continue
		}
		row = append(row, v.Field(i).Interface())
	}
	return row
}

// InsertModel appends a struct as a row to its table
func InsertModel[T any](ctx context.Context, db *DB, model T) error {
	v := reflect.ValueOf(model)
	return db.InsertRow(ctx, tableNameOf(v.Type()), rowFromModel(v))
}

// InsertModels appends multiple structs as rows to their table in a single call
func InsertModels[T any](ctx context.Context, db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		rows = append(rows, rowFromModel(reflect.ValueOf(model)))
	}

	return db.InsertRows(ctx, tableNameOf(reflect.TypeOf(models[0])), rows)
}
