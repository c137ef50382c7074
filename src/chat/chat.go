package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elee1766/pocketllm/src/llm"
)

// Generator is the orchestrator surface the chat needs. *llm.Manager
// implements it.
type Generator interface {
	CheckAvailability(ctx context.Context) llm.Availability
	Generate(ctx context.Context, prompt string) (string, error)
	State() llm.SessionState
}

var _ Generator = (*llm.Manager)(nil)

type Options struct {
	Generator Generator
	Store     *Store
	// SurfaceErrors appends orchestrator failures to the transcript as
	// assistant messages instead of only returning them.
	SurfaceErrors bool
	Logger        *slog.Logger
}

type Chat struct {
	gen           Generator
	store         *Store
	surfaceErrors bool
	logger        *slog.Logger
}

// New builds a chat and appends the model availability as its first message.
func New(ctx context.Context, opts Options) (*Chat, error) {
	if opts.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Store == nil {
		opts.Store = NewStore(StoreOptions{Logger: opts.Logger})
	}

	c := &Chat{
		gen:           opts.Generator,
		store:         opts.Store,
		surfaceErrors: opts.SurfaceErrors,
		logger:        opts.Logger,
	}
	avail := c.gen.CheckAvailability(ctx)
	c.store.Append(ctx, avail.Explain(), false)
	return c, nil
}

func (c *Chat) Store() *Store {
	return c.store
}

func (c *Chat) Messages() []Message {
	return c.store.Messages()
}

func (c *Chat) IsResponding() bool {
	return c.gen.State().IsResponding
}

// Send appends input as a user message, generates a reply and appends it.
// Input is trimmed; empty input is not sent and returns a nil reply.
//
// When generation fails the error is returned. With SurfaceErrors the
// explanation is also appended and returned as the reply.
func (c *Chat) Send(ctx context.Context, input string) (*Message, error) {
	prompt := strings.TrimSpace(input)
	if prompt == "" {
		return nil, nil
	}
	c.store.Append(ctx, prompt, true)
	return c.reply(ctx, prompt)
}

// Result is the outcome of SendAsync.
type Result struct {
	Reply *Message
	Err   error
}

// SendAsync appends the user message before returning and generates the
// reply in the background. The channel receives exactly one Result and is
// then closed. Empty input yields a closed channel with a zero Result.
func (c *Chat) SendAsync(ctx context.Context, input string) <-chan Result {
	out := make(chan Result, 1)
	prompt := strings.TrimSpace(input)
	if prompt == "" {
		out <- Result{}
		close(out)
		return out
	}

	c.store.Append(ctx, prompt, true)
	go func() {
		defer close(out)
		reply, err := c.reply(ctx, prompt)
		out <- Result{Reply: reply, Err: err}
	}()
	return out
}

func (c *Chat) reply(ctx context.Context, prompt string) (*Message, error) {
	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("generation failed", "error", err)
		if !c.surfaceErrors {
			return nil, err
		}
		msg := c.store.Append(ctx, llm.UserMessage(err), false)
		return &msg, err
	}
	msg := c.store.Append(ctx, text, false)
	return &msg, nil
}
