// Package ollamart runs model sessions against a local Ollama server.
package ollamart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/elee1766/pocketllm/src/llm"
	"github.com/ollama/ollama/api"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	DefaultBaseURL       = "http://localhost:11434"
	DefaultModel         = "llama3.2:latest"
	DefaultMaxToolRounds = 8

	probeTimeout = 5 * time.Second
)

type Config struct {
	BaseURL string
	Model   string
	// MinMemoryMB is the least total memory the device needs. Zero skips
	// the check.
	MinMemoryMB   uint64
	MaxToolRounds int
	Temperature   *float64

	HTTPClient *http.Client
	Logger     *slog.Logger
	// MemoryTotal reports total memory in bytes. Defaults to gopsutil.
	MemoryTotal func(ctx context.Context) (uint64, error)
}

type Runtime struct {
	client *api.Client
	cfg    Config
	logger *slog.Logger
}

var _ llm.Runtime = (*Runtime)(nil)

func New(cfg Config) (*Runtime, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = DefaultMaxToolRounds
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MemoryTotal == nil {
		cfg.MemoryTotal = virtualMemoryTotal
	}

	parsedURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &Runtime{
		client: api.NewClient(parsedURL, cfg.HTTPClient),
		cfg:    cfg,
		logger: cfg.Logger,
	}, nil
}

func virtualMemoryTotal(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}

// Model returns the configured model name.
func (r *Runtime) Model() string {
	return r.cfg.Model
}

// Availability classifies the runtime: too little memory means the device
// is not eligible, an unreachable server means the runtime is not enabled,
// and a model that has not been pulled is not ready.
func (r *Runtime) Availability(ctx context.Context) llm.Availability {
	if r.cfg.MinMemoryMB > 0 {
		total, err := r.cfg.MemoryTotal(ctx)
		if err != nil {
			r.logger.Debug("memory probe failed", "error", err)
		} else if total < r.cfg.MinMemoryMB*1024*1024 {
			return llm.Unavailable(llm.ReasonDeviceNotEligible, "")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	list, err := r.client.List(ctx)
	if err != nil {
		r.logger.Debug("ollama unreachable", "url", r.cfg.BaseURL, "error", err)
		return llm.Unavailable(llm.ReasonRuntimeNotEnabled, "")
	}

	want := normalizeModelName(r.cfg.Model)
	for _, m := range list.Models {
		if normalizeModelName(m.Name) == want || normalizeModelName(m.Model) == want {
			return llm.Available()
		}
	}
	return llm.Unavailable(llm.ReasonModelNotReady, "")
}

func normalizeModelName(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && !strings.Contains(name, ":") {
		name += ":latest"
	}
	return name
}

// NewSession binds a session to cfg's toolbox. Tool descriptions are
// evaluated here, once.
func (r *Runtime) NewSession(ctx context.Context, cfg llm.SessionConfig) (llm.Session, error) {
	var tools []api.Tool
	if cfg.Toolbox != nil {
		for _, tool := range cfg.Toolbox.Tools() {
			converted, err := convertTool(tool.GetName(), tool.GetDescription(), tool.GetParameters())
			if err != nil {
				return nil, err
			}
			tools = append(tools, converted)
		}
	}

	return &session{
		runtime:      r,
		toolbox:      cfg.Toolbox,
		tools:        tools,
		system:       cfg.Instructions,
		historyLimit: cfg.HistoryLimit,
	}, nil
}

func (r *Runtime) chat(ctx context.Context, messages []api.Message, tools []api.Tool) (api.Message, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    r.cfg.Model,
		Messages: messages,
		Tools:    tools,
		Stream:   &stream,
	}
	if r.cfg.Temperature != nil {
		req.Options = map[string]any{"temperature": *r.cfg.Temperature}
	}

	var reply api.Message
	var content strings.Builder
	err := r.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		reply.ToolCalls = append(reply.ToolCalls, resp.Message.ToolCalls...)
		return nil
	})
	if err != nil {
		return api.Message{}, err
	}
	reply.Role = "assistant"
	reply.Content = content.String()
	return reply, nil
}

func toAISDKCall(call api.ToolCall, id string) (*aisdk.ToolCall, error) {
	args, err := json.Marshal(map[string]any(call.Function.Arguments))
	if err != nil {
		return nil, fmt.Errorf("encode arguments for %s: %w", call.Function.Name, err)
	}
	return &aisdk.ToolCall{
		ID:   id,
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      call.Function.Name,
			Arguments: args,
		},
	}, nil
}
