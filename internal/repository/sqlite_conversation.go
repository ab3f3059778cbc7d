package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
)

// SQLiteConversationRepo implements ConversationRepo using a SQLite database.
type SQLiteConversationRepo struct {
	db db.DBTX
}

func NewSQLiteConversationRepo(conn db.DBTX) *SQLiteConversationRepo {
	return &SQLiteConversationRepo{db: conn}
}

const conversationColumns = `id, user_id, title, conversation_type, skill, pinned, created_at, updated_at`

func (r *SQLiteConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	query := `INSERT INTO conversations (` + conversationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Title, string(c.Type), nullableString(c.Skill), boolToInt(c.Pinned),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting conversation: %w", err)
	}
	return nil
}

func (r *SQLiteConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+conversationColumns+` FROM conversations WHERE id = ?`, id)
	return r.scanConversation(row)
}

func (r *SQLiteConversationRepo) GetMaster(ctx context.Context, userID string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations
		WHERE user_id = ? AND conversation_type = 'master'`
	return r.scanConversation(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLiteConversationRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations
		WHERE user_id = ?
		ORDER BY pinned DESC, updated_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Conversation
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return out, nil
}

func (r *SQLiteConversationRepo) Update(ctx context.Context, c *domain.Conversation) error {
	query := `UPDATE conversations SET title = ?, skill = ?, pinned = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Title, nullableString(c.Skill), boolToInt(c.Pinned), formatTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	return requireAffected(res, "conversation")
}

// Touch bumps updated_at so the conversation sorts as recently active.
func (r *SQLiteConversationRepo) Touch(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE conversations SET updated_at = ? WHERE id = ?`,
		formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("touching conversation: %w", err)
	}
	return nil
}

func (r *SQLiteConversationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	return requireAffected(res, "conversation")
}

func (r *SQLiteConversationRepo) scanConversation(row *sql.Row) (*domain.Conversation, error) {
	c, err := r.scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conversation: %w", ErrNotFound)
	}
	return c, err
}

func (r *SQLiteConversationRepo) scanRow(row rowScanner) (*domain.Conversation, error) {
	var c domain.Conversation
	var convType string
	var skill sql.NullString
	var pinned int
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &convType, &skill, &pinned, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}
	c.Type = domain.ConversationType(convType)
	c.Skill = stringPtr(skill)
	c.Pinned = intToBool(pinned)

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
