// Package llmtest provides a scripted llm.Runtime for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/elee1766/pocketllm/src/llm"
)

// ReplyFunc produces the session's answer to prompt.
type ReplyFunc func(ctx context.Context, cfg llm.SessionConfig, prompt string) (string, error)

// Echo answers with the prompt itself.
func Echo(ctx context.Context, cfg llm.SessionConfig, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

// Runtime is an in-memory llm.Runtime that records what it was asked.
type Runtime struct {
	mu       sync.Mutex
	avail    llm.Availability
	reply    ReplyFunc
	sessions []llm.SessionConfig
	prompts  []string
}

var _ llm.Runtime = (*Runtime)(nil)

// NewRuntime returns an available runtime answering with reply, or Echo when
// reply is nil.
func NewRuntime(reply ReplyFunc) *Runtime {
	if reply == nil {
		reply = Echo
	}
	return &Runtime{avail: llm.Available(), reply: reply}
}

func (r *Runtime) SetAvailability(a llm.Availability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.avail = a
}

func (r *Runtime) Availability(ctx context.Context) llm.Availability {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.avail
}

func (r *Runtime) NewSession(ctx context.Context, cfg llm.SessionConfig) (llm.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, cfg)
	return &session{runtime: r, cfg: cfg}, nil
}

// Sessions returns the configs of every session created so far.
func (r *Runtime) Sessions() []llm.SessionConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]llm.SessionConfig(nil), r.sessions...)
}

// Prompts returns every prompt received, in order.
func (r *Runtime) Prompts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.prompts...)
}

type session struct {
	runtime *Runtime
	cfg     llm.SessionConfig
}

func (s *session) Respond(ctx context.Context, prompt string) (string, error) {
	s.runtime.mu.Lock()
	s.runtime.prompts = append(s.runtime.prompts, prompt)
	reply := s.runtime.reply
	s.runtime.mu.Unlock()
	return reply(ctx, s.cfg, prompt)
}

// Gate holds replies until released, for exercising in-flight behavior.
type Gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func NewGate() *Gate {
	return &Gate{
		entered: make(chan struct{}, 64),
		release: make(chan struct{}),
	}
}

// Entered receives once per reply that has started waiting.
func (g *Gate) Entered() <-chan struct{} {
	return g.entered
}

// Release lets every waiting and future reply finish.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.release) })
}

// Reply wraps next so it waits for Release (or ctx) first.
func (g *Gate) Reply(next ReplyFunc) ReplyFunc {
	if next == nil {
		next = Echo
	}
	return func(ctx context.Context, cfg llm.SessionConfig, prompt string) (string, error) {
		g.entered <- struct{}{}
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		return next(ctx, cfg, prompt)
	}
}

// CallTools runs calls through the session's toolbox in order, then answers
// with the tool outputs joined by newlines.
func CallTools(calls ...aisdk.ToolCall) ReplyFunc {
	return func(ctx context.Context, cfg llm.SessionConfig, prompt string) (string, error) {
		if cfg.Toolbox == nil {
			return "", fmt.Errorf("session has no toolbox")
		}
		var out string
		for i := range calls {
			resp, err := cfg.Toolbox.ExecuteTool(ctx, &calls[i])
			if err != nil {
				return "", err
			}
			if i > 0 {
				out += "\n"
			}
			out += resp.Text()
		}
		return out, nil
	}
}
