package planner

import (
	"encoding/json"
	"sync"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/invopop/jsonschema"
)

var (
	schemaOnce sync.Once
	schemaJSON []byte
)

// ResponseSchema returns the JSON Schema of the meal plan response contract.
func ResponseSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	return r.Reflect(&models.MealPlanResponse{})
}

// ResponseSchemaJSON is ResponseSchema rendered once as indented JSON.
func ResponseSchemaJSON() []byte {
	schemaOnce.Do(func() {
		data, err := json.MarshalIndent(ResponseSchema(), "", "  ")
		if err != nil {
			// reflection of a fixed struct cannot produce unmarshalable output
			panic(err)
		}
		schemaJSON = data
	})
	return schemaJSON
}
