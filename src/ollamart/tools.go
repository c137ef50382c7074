package ollamart

import (
	"encoding/json"
	"fmt"

	"github.com/ollama/ollama/api"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// convertTool turns a reflected argument schema into Ollama's tool shape.
func convertTool(name, description string, schema *jsonschema.Schema) (api.Tool, error) {
	params := api.ToolFunctionParameters{
		Type:       "object",
		Properties: map[string]api.ToolProperty{},
	}
	if schema != nil {
		raw, err := json.Marshal(schema)
		if err != nil {
			return api.Tool{}, fmt.Errorf("encode schema for %s: %w", name, err)
		}
		if err := json.Unmarshal(raw, &params); err != nil {
			return api.Tool{}, fmt.Errorf("convert schema for %s: %w", name, err)
		}
		if params.Type == "" {
			params.Type = "object"
		}
		if params.Properties == nil {
			params.Properties = map[string]api.ToolProperty{}
		}
	}

	return api.Tool{
		Type: "function",
		Function: api.ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
	}, nil
}
