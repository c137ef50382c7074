// Package chat holds the conversation log and the send path that feeds it
// to the model.
package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one transcript entry. Messages are never mutated once appended.
type Message struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	IsFromUser bool      `json:"is_from_user"`
	Timestamp  time.Time `json:"timestamp"`
}

// Sink persists appended messages. It is called with the store lock held, so
// messages reach it in append order.
type Sink interface {
	AppendMessage(ctx context.Context, msg Message) error
}

type StoreOptions struct {
	Sink   Sink
	Logger *slog.Logger
	Now    func() time.Time
}

// Store is the ordered, append-only conversation log.
type Store struct {
	sink   Sink
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	messages  []Message
	observers []func(Message)
}

func NewStore(opts StoreOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		sink:   opts.Sink,
		logger: opts.Logger,
		now:    opts.Now,
	}
}

// Append adds a message at the end of the log and returns it. A sink failure
// is logged; the message stays in the log.
func (s *Store) Append(ctx context.Context, content string, fromUser bool) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:         uuid.New().String(),
		Content:    content,
		IsFromUser: fromUser,
		Timestamp:  s.now(),
	}
	s.messages = append(s.messages, msg)

	if s.sink != nil {
		if err := s.sink.AppendMessage(ctx, msg); err != nil {
			s.logger.Error("failed to persist message", "id", msg.ID, "error", err)
		}
	}
	for _, fn := range s.observers {
		fn(msg)
	}
	return msg
}

// Subscribe registers fn to be called for every later append, in order.
// fn runs under the store lock and must not call back into the store.
func (s *Store) Subscribe(fn func(Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Messages returns a copy of the log.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
