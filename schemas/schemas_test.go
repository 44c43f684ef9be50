package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/issue-scout/internal/schemas"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"exported_results.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	schemaFiles := []string{
		"exported_results.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]

			assert.True(t, hasType || hasSchema || hasProps,
				"schema should have at least type, $schema, or properties")
		})
	}
}

func TestExportedResultsSchema_AcceptsMinimalReport(t *testing.T) {
	schemaData, err := os.ReadFile("exported_results.schema.json")
	require.NoError(t, err)

	testJSON := `{
		"report_id": "00000000-0000-0000-0000-000000000000",
		"exported_at": "2026-08-30T12:00:00Z",
		"preferences": {"skill": "beginner", "time_budget": "quick_win"},
		"total_results": 0,
		"results": []
	}`

	err = schemas.ValidateJSONString(string(schemaData), testJSON)
	assert.NoError(t, err)
}

func TestExportedResultsSchema_RejectsBadEnum(t *testing.T) {
	schemaData, err := os.ReadFile("exported_results.schema.json")
	require.NoError(t, err)

	testJSON := `{
		"report_id": "00000000-0000-0000-0000-000000000000",
		"exported_at": "2026-08-30T12:00:00Z",
		"preferences": {"skill": "wizard", "time_budget": "quick_win"},
		"total_results": 0,
		"results": []
	}`

	err = schemas.ValidateJSONString(string(schemaData), testJSON)
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}
