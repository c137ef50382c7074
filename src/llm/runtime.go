package llm

import (
	"context"

	"github.com/elee1766/pocketllm/src/agent"
)

// SessionConfig fixes what a session is bound to for its whole life.
type SessionConfig struct {
	Toolbox      *agent.DefaultToolbox
	Instructions string
	// HistoryLimit caps how many prior messages are sent with each prompt.
	// Zero keeps everything.
	HistoryLimit int
}

// Runtime is a language model backend.
type Runtime interface {
	Availability(ctx context.Context) Availability
	NewSession(ctx context.Context, cfg SessionConfig) (Session, error)
}

// Session is one conversational context. Tool calls requested by the model
// are resolved inside Respond; callers only see the final text.
type Session interface {
	Respond(ctx context.Context, prompt string) (string, error)
}
