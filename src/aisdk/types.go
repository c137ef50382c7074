// Package aisdk holds the wire-level types shared between the tool registry and
// the model runtimes.
package aisdk

import (
	"encoding/json"

	jsonschema "github.com/swaggest/jsonschema-go"
)

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // Always "function" for now
	Function FunctionCall `json:"function"`
}

// FunctionCall contains the function name and arguments.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResponse is what a tool hands back to the runtime.
//
// Only Content is forwarded to the model. IsError exists for logging and the
// execution ledger; the model never sees a status code.
type ToolResponse struct {
	Type    string `json:"type"`
	Content []byte `json:"content"`
	IsError bool   `json:"is_error"`
}

// Text returns the response content as a string.
func (r *ToolResponse) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// ChatTool is a tool declaration in the shape runtimes hand to the model.
type ChatTool struct {
	Type     string           `json:"type"` // Always "function" for function tools
	Function ChatToolFunction `json:"function"`
}

// ChatToolFunction is the function part of a ChatTool.
type ChatToolFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}
