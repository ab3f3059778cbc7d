package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
)

// SQLiteMessageRepo implements MessageRepo over the chat_history table.
type SQLiteMessageRepo struct {
	db db.DBTX
}

func NewSQLiteMessageRepo(conn db.DBTX) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: conn}
}

func (r *SQLiteMessageRepo) Create(ctx context.Context, m *domain.ChatMessage) error {
	query := `INSERT INTO chat_history (id, user_id, conversation_id, role, message, sentiment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	var sentiment interface{}
	if m.Sentiment != "" {
		sentiment = string(m.Sentiment)
	}
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.ConversationID, string(m.Role), m.Text, sentiment, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}

func (r *SQLiteMessageRepo) ListByConversation(ctx context.Context, conversationID string, limit int) ([]*domain.ChatMessage, error) {
	// Newest window first, then back to chronological order.
	query := `SELECT id, user_id, conversation_id, role, message, sentiment, created_at FROM (
			SELECT id, user_id, conversation_id, role, message, sentiment, created_at, rowid AS seq
			FROM chat_history WHERE conversation_id = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		) ORDER BY created_at ASC, seq ASC`
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var role, createdAt string
		var sentiment sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.ConversationID, &role, &m.Text, &sentiment, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.Role = domain.Role(role)
		m.Sentiment = domain.Sentiment(sentiment.String)
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return out, nil
}

func (r *SQLiteMessageRepo) CountByConversation(ctx context.Context, conversationID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_history WHERE conversation_id = ?`, conversationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chat messages: %w", err)
	}
	return n, nil
}

func (r *SQLiteMessageRepo) DeleteByConversation(ctx context.Context, conversationID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_history WHERE conversation_id = ?`, conversationID); err != nil {
		return fmt.Errorf("clearing chat history: %w", err)
	}
	return nil
}
