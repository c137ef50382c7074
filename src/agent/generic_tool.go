package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/go-playground/validator/v10"
	"github.com/swaggest/jsonschema-go"
)

// Handler is a type-safe tool handler. It never fails: problems are reported
// through a failed Result.
type Handler[TInput any] func(ctx context.Context, input TInput) Result

// Describer builds a tool description on demand.
type Describer func() string

// GenericTool is a tool whose argument schema is reflected from TInput and
// whose arguments are validated with the `validate` struct tags before the
// handler runs.
type GenericTool[TInput any] struct {
	Type      string
	Name      string
	Describe  Describer
	InputType reflect.Type
	Schema    *jsonschema.Schema
	Handler   Handler[TInput]
}

var argsValidator = newArgsValidator()

func newArgsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by the name the model used.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GetType returns the tool type (always "function" for now)
func (gt *GenericTool[TInput]) GetType() string {
	return gt.Type
}

// GetName returns the tool's name
func (gt *GenericTool[TInput]) GetName() string {
	return gt.Name
}

// GetDescription evaluates the describer.
func (gt *GenericTool[TInput]) GetDescription() string {
	if gt.Describe == nil {
		return ""
	}
	return gt.Describe()
}

// GetParameters returns the JSON schema for the tool's parameters
func (gt *GenericTool[TInput]) GetParameters() *jsonschema.Schema {
	return gt.Schema
}

// Execute decodes and validates the arguments, then runs the handler.
func (gt *GenericTool[TInput]) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	if call == nil {
		return nil, fmt.Errorf("tool %s: nil call", gt.Name)
	}

	var input TInput
	raw := bytes.TrimSpace(call.Function.Arguments)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, &input); err != nil {
		return toResponse(Failure("Invalid arguments for %s: %v", gt.Name, err)), nil
	}

	if err := argsValidator.Struct(input); err != nil {
		return toResponse(Failure("Invalid arguments for %s: %s", gt.Name, describeValidation(err))), nil
	}

	return toResponse(gt.Handler(ctx, input)), nil
}

func toResponse(r Result) *aisdk.ToolResponse {
	kind := "text"
	if r.Failed {
		kind = "error"
	}
	return &aisdk.ToolResponse{
		Type:    kind,
		Content: []byte(r.Text),
		IsError: r.Failed,
	}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field '%s' is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// NewTool creates a generic tool with a schema reflected from TInput.
func NewTool[TInput any](name string, describe Describer, handler Handler[TInput]) (*GenericTool[TInput], error) {
	if name == "" {
		return nil, fmt.Errorf("tool name cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("tool %s: handler is required", name)
	}

	var input TInput
	inputType := reflect.TypeOf(input)
	if inputType == nil || inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool input type must be a struct, got %v", inputType)
	}

	reflector := jsonschema.Reflector{}
	schema, err := reflector.Reflect(input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	return &GenericTool[TInput]{
		Type:      "function",
		Name:      name,
		Describe:  describe,
		InputType: inputType,
		Schema:    &schema,
		Handler:   handler,
	}, nil
}

var _ Tool = (*GenericTool[struct{}])(nil)
