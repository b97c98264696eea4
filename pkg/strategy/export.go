package strategy

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from the
// strategy Go types using invopop/jsonschema. The generated schema is the
// single structural authority: the schema validator compiles it, and agents
// fetch it through the CLI and the MCP read_strategy_schema tool.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Document{})
	s.ID = "https://github.com/ormasoftchile/pitwall/schemas/strategy-v1.json"
	s.Title = "Pit-Stop Strategy Document v1"
	s.Description = "Schema for pitwall strategy YAML documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
