package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchemaJSON(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(ResponseSchemaJSON(), &doc))

	assert.Equal(t, "object", doc["type"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "days")
	assert.Contains(t, doc["required"], "days")
}

func TestResponseSchemaItemFields(t *testing.T) {
	data := string(ResponseSchemaJSON())
	for _, field := range []string{"dayTitle", "mealTitle", "itemName", "calories", "protein", "carbs", "fat", "sugar"} {
		assert.Contains(t, data, `"`+field+`"`)
	}
}
