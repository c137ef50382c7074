package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elee1766/pocketllm/src/aisdk"
)

// ToolExecutor is a function type for tool execution
type ToolExecutor func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)

// DefaultToolbox is the toolbox over the Tool interface.
type DefaultToolbox = Toolbox[Tool]

// Toolbox is an ordered registry of tools. Tools come back in registration
// order, which is the order they are declared to the model.
type Toolbox[T Tool] struct {
	tools      map[string]T
	order      []string
	middleware []ToolMiddleware
}

// ToolMiddleware is a function that wraps a ToolExecutor to add functionality.
type ToolMiddleware func(next ToolExecutor) ToolExecutor

// NewToolbox creates an empty toolbox.
func NewToolbox[T Tool]() *Toolbox[T] {
	return &Toolbox[T]{
		tools: make(map[string]T),
	}
}

// RegisterTool registers a tool.
func (tm *Toolbox[T]) RegisterTool(tool T) error {
	name := tool.GetName()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := tm.tools[name]; exists {
		return fmt.Errorf("tool %s is already registered", name)
	}

	tm.tools[name] = tool
	tm.order = append(tm.order, name)
	return nil
}

// RegisterMiddleware registers middleware that will be applied to all tool executions.
// Middleware is applied in the order it's registered (first registered = outermost layer).
func (tm *Toolbox[T]) RegisterMiddleware(middleware ToolMiddleware) {
	tm.middleware = append(tm.middleware, middleware)
}

// Tools returns the registered tools in registration order.
func (tm *Toolbox[T]) Tools() []T {
	out := make([]T, 0, len(tm.order))
	for _, name := range tm.order {
		out = append(out, tm.tools[name])
	}
	return out
}

// Names returns the registered tool names in registration order.
func (tm *Toolbox[T]) Names() []string {
	return append([]string(nil), tm.order...)
}

// ExecuteTool executes a tool call with middleware applied. An unknown tool is
// reported in-band so the model can correct itself.
func (tm *Toolbox[T]) ExecuteTool(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	var executor ToolExecutor
	if tool, exists := tm.tools[call.Function.Name]; exists {
		executor = tool.Execute
	} else {
		executor = func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			return toResponse(Failure("Tool not found: %s", call.Function.Name)), nil
		}
	}

	for i := len(tm.middleware) - 1; i >= 0; i-- {
		executor = tm.middleware[i](executor)
	}

	return executor(ctx, call)
}

// GetTool returns a specific tool by name.
func (tm *Toolbox[T]) GetTool(name string) (T, bool) {
	tool, exists := tm.tools[name]
	return tool, exists
}

// HasTool checks if a tool is available.
func (tm *Toolbox[T]) HasTool(name string) bool {
	_, exists := tm.tools[name]
	return exists
}

// LoggingMiddleware logs tool execution details.
func LoggingMiddleware(logger *slog.Logger) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			logger.Debug("executing tool", "tool", call.Function.Name, "params", string(call.Function.Arguments))
			result, err := next(ctx, call)
			switch {
			case err != nil:
				logger.Error("tool execution failed", "tool", call.Function.Name, "error", err)
			case result != nil && result.IsError:
				logger.Warn("tool reported failure", "tool", call.Function.Name, "result", result.Text())
			default:
				logger.Info("tool execution completed", "tool", call.Function.Name)
			}
			return result, err
		}
	}
}

// ExecutionRecord describes one finished tool execution.
type ExecutionRecord struct {
	ToolName string
	Input    string
	Output   string
	Failed   bool
	Duration time.Duration
}

// ExecutionRecorder persists execution records.
type ExecutionRecorder interface {
	RecordToolExecution(ctx context.Context, rec ExecutionRecord) error
}

// RecordingMiddleware hands every execution to rec. Recording errors are
// logged and never change the tool result.
func RecordingMiddleware(rec ExecutionRecorder, logger *slog.Logger) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			start := time.Now()
			result, err := next(ctx, call)

			record := ExecutionRecord{
				ToolName: call.Function.Name,
				Input:    string(call.Function.Arguments),
				Duration: time.Since(start),
			}
			if err != nil {
				record.Output = err.Error()
				record.Failed = true
			} else if result != nil {
				record.Output = result.Text()
				record.Failed = result.IsError
			}
			if rerr := rec.RecordToolExecution(ctx, record); rerr != nil {
				logger.Error("failed to record tool execution", "tool", call.Function.Name, "error", rerr)
			}
			return result, err
		}
	}
}
