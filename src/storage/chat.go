package storage

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// CreateChat creates a new chat in the database
func CreateChat(ctx context.Context, db Execer, chat *Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now()
	}

	query := `INSERT INTO chats (id, created_at) VALUES (?, ?)`
	_, err := db.ExecContext(ctx, query, chat.ID, chat.CreatedAt)
	return err
}

// AppendMessage stores a message at the end of its chat. Seq is assigned in
// the same statement, so it follows call order.
func AppendMessage(ctx context.Context, db ExecQuerier, message *Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query := `INSERT INTO messages (id, chat_id, seq, content, is_from_user, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE chat_id = ?), ?, ?, ?)
		RETURNING seq`
	return sqlscan.Get(ctx, db, &message.Seq, query,
		message.ID, message.ChatID, message.ChatID, message.Content, message.IsFromUser, message.CreatedAt)
}

// ListMessages returns a chat's messages in append order
func ListMessages(ctx context.Context, db sqlscan.Querier, chatID string) ([]Message, error) {
	query := `SELECT id, chat_id, seq, content, is_from_user, created_at FROM messages WHERE chat_id = ? ORDER BY seq`
	var messages []Message
	if err := sqlscan.Select(ctx, db, &messages, query, chatID); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateToolExecution creates a new tool execution record in the database
func CreateToolExecution(ctx context.Context, db Execer, execution *ToolExecution) error {
	if execution.ID == "" {
		execution.ID = uuid.New().String()
	}
	if execution.CreatedAt.IsZero() {
		execution.CreatedAt = time.Now()
	}

	query := `INSERT INTO tool_executions (id, chat_id, tool_name, input, output, failed, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		execution.ID,
		execution.ChatID,
		execution.ToolName,
		execution.Input,
		execution.Output,
		execution.Failed,
		execution.DurationMs,
		execution.CreatedAt,
	)
	return err
}

// ListToolExecutions returns the most recent executions, newest first
func ListToolExecutions(ctx context.Context, db sqlscan.Querier, limit int) ([]ToolExecution, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, chat_id, tool_name, input, output, failed, duration_ms, created_at FROM tool_executions ORDER BY created_at DESC, rowid DESC LIMIT ?`
	var out []ToolExecution
	if err := sqlscan.Select(ctx, db, &out, query, limit); err != nil {
		return nil, err
	}
	return out, nil
}
