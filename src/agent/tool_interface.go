package agent

import (
	"context"

	"github.com/elee1766/pocketllm/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// GetType returns the tool type (always "function" for now)
	GetType() string

	// GetName returns the tool's name. It must be stable for the lifetime of
	// the process since runtimes address tools by name.
	GetName() string

	// GetDescription returns the tool's description. It is evaluated every
	// time it is called, so descriptions that embed the date stay current.
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's parameters
	GetParameters() *jsonschema.Schema

	// Execute runs the tool. Implementations report failures inside the
	// response and reserve the error return for programming mistakes.
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}
