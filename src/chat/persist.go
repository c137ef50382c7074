package chat

import (
	"context"
	"fmt"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/storage"
)

// DBSink writes messages to the messages table under one chat.
type DBSink struct {
	db     storage.ExecQuerier
	chatID string
}

var _ Sink = (*DBSink)(nil)

// NewDBSink creates the chat row and returns a sink bound to it.
func NewDBSink(ctx context.Context, db storage.ExecQuerier) (*DBSink, error) {
	row := &storage.Chat{}
	if err := storage.CreateChat(ctx, db, row); err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return &DBSink{db: db, chatID: row.ID}, nil
}

func (s *DBSink) ChatID() string {
	return s.chatID
}

func (s *DBSink) AppendMessage(ctx context.Context, msg Message) error {
	return storage.AppendMessage(ctx, s.db, &storage.Message{
		ID:         msg.ID,
		ChatID:     s.chatID,
		Content:    msg.Content,
		IsFromUser: msg.IsFromUser,
		CreatedAt:  msg.Timestamp,
	})
}

// Ledger records tool executions against a chat.
type Ledger struct {
	db     storage.Execer
	chatID string
}

var _ agent.ExecutionRecorder = (*Ledger)(nil)

func NewLedger(db storage.Execer, chatID string) *Ledger {
	return &Ledger{db: db, chatID: chatID}
}

func (l *Ledger) RecordToolExecution(ctx context.Context, rec agent.ExecutionRecord) error {
	return storage.CreateToolExecution(ctx, l.db, &storage.ToolExecution{
		ChatID:     l.chatID,
		ToolName:   rec.ToolName,
		Input:      rec.Input,
		Output:     rec.Output,
		Failed:     rec.Failed,
		DurationMs: rec.Duration.Milliseconds(),
	})
}
