// Package mcpserver exposes a toolbox to MCP clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/google/uuid"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Config struct {
	Name    string
	Version string
	Toolbox *agent.DefaultToolbox
	Logger  *slog.Logger
}

type Server struct {
	mcp     *server.MCPServer
	toolbox *agent.DefaultToolbox
	logger  *slog.Logger
	names   []string
}

// New registers every tool in cfg.Toolbox, in order. Results, failed ones
// included, are returned as plain text with no error flag: the text already
// tells the model what went wrong.
func New(cfg Config) (*Server, error) {
	if cfg.Toolbox == nil {
		return nil, fmt.Errorf("toolbox is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		toolbox: cfg.Toolbox,
		logger:  cfg.Logger,
	}
	s.mcp = server.NewMCPServer(cfg.Name, cfg.Version,
		server.WithToolCapabilities(false),
		server.WithToolFilter(s.describe),
	)

	for _, tool := range cfg.Toolbox.Tools() {
		schema, err := json.Marshal(tool.GetParameters())
		if err != nil {
			return nil, fmt.Errorf("encode schema for %s: %w", tool.GetName(), err)
		}
		s.mcp.AddTool(
			mcptypes.NewToolWithRawSchema(tool.GetName(), tool.GetDescription(), schema),
			s.handler(tool.GetName()),
		)
		s.names = append(s.names, tool.GetName())
	}
	return s, nil
}

// ToolNames lists the registered tools.
func (s *Server) ToolNames() []string {
	return append([]string(nil), s.names...)
}

// describe replaces the registration-time descriptions with fresh ones on
// every tools/list, so date-bearing descriptions follow the clock.
func (s *Server) describe(ctx context.Context, tools []mcptypes.Tool) []mcptypes.Tool {
	out := make([]mcptypes.Tool, len(tools))
	for i, t := range tools {
		if tool, ok := s.toolbox.GetTool(t.Name); ok {
			t.Description = tool.GetDescription()
		}
		out[i] = t
	}
	return out
}

// ServeStdio blocks serving JSON-RPC on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio", "tools", s.names)
	return server.ServeStdio(s.mcp)
}

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
		args := request.Params.Arguments
		if args == nil {
			args = map[string]any{}
		}
		raw, err := json.Marshal(args)
		if err != nil {
			return mcptypes.NewToolResultText(fmt.Sprintf("Invalid arguments for %s: %v", name, err)), nil
		}

		resp, err := s.toolbox.ExecuteTool(ctx, &aisdk.ToolCall{
			ID:   uuid.New().String(),
			Type: "function",
			Function: aisdk.FunctionCall{
				Name:      name,
				Arguments: raw,
			},
		})
		if err != nil {
			return nil, err
		}
		if resp.IsError {
			s.logger.Debug("tool reported failure", "tool", name)
		}
		return mcptypes.NewToolResultText(resp.Text()), nil
	}
}
