package ollamart

import (
	"context"
	"fmt"
	"sync"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/ollama/ollama/api"
)

type session struct {
	runtime      *Runtime
	toolbox      *agent.DefaultToolbox
	tools        []api.Tool
	system       string
	historyLimit int

	mu      sync.Mutex
	history []api.Message
}

// Respond runs one turn: the model may call tools for up to MaxToolRounds
// rounds before it must answer. Calls inside a round run in the order the
// model listed them and each one fails on its own.
func (s *session) Respond(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := []api.Message{{Role: "user", Content: prompt}}
	logger := s.runtime.logger

	for round := 0; ; round++ {
		reply, err := s.runtime.chat(ctx, s.requestMessages(turn), s.tools)
		if err != nil {
			return "", fmt.Errorf("ollama chat: %w", err)
		}
		turn = append(turn, reply)

		if len(reply.ToolCalls) == 0 {
			s.commit(turn)
			return reply.Content, nil
		}
		if round >= s.runtime.cfg.MaxToolRounds {
			return "", fmt.Errorf("model kept calling tools after %d rounds", s.runtime.cfg.MaxToolRounds)
		}

		for i, call := range reply.ToolCalls {
			content := s.execute(ctx, call, fmt.Sprintf("call_%d_%d", round, i))
			logger.Debug("tool result", "tool", call.Function.Name, "round", round)
			turn = append(turn, api.Message{Role: "tool", Content: content})
		}
	}
}

func (s *session) execute(ctx context.Context, call api.ToolCall, id string) string {
	if s.toolbox == nil {
		return fmt.Sprintf("Tool not found: %s", call.Function.Name)
	}
	tc, err := toAISDKCall(call, id)
	if err != nil {
		return err.Error()
	}
	resp, err := s.toolbox.ExecuteTool(ctx, tc)
	if err != nil {
		return fmt.Sprintf("Tool %s failed: %v", call.Function.Name, err)
	}
	return resp.Text()
}

func (s *session) requestMessages(turn []api.Message) []api.Message {
	msgs := make([]api.Message, 0, len(s.history)+len(turn)+1)
	if s.system != "" {
		msgs = append(msgs, api.Message{Role: "system", Content: s.system})
	}
	msgs = append(msgs, trimHistory(s.history, s.historyLimit)...)
	return append(msgs, turn...)
}

func (s *session) commit(turn []api.Message) {
	s.history = append(s.history, turn...)
	if s.historyLimit > 0 && len(s.history) > s.historyLimit {
		s.history = trimHistory(s.history, s.historyLimit)
	}
}

// trimHistory keeps at most limit trailing messages, starting at a user
// message so a tool result is never separated from its call. Zero keeps all.
func trimHistory(history []api.Message, limit int) []api.Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	kept := history[len(history)-limit:]
	for i, m := range kept {
		if m.Role == "user" {
			return kept[i:]
		}
	}
	return nil
}
