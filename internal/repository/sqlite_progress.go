package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo using a SQLite database.
type SQLiteProgressRepo struct {
	db db.DBTX
}

func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

// Get returns the user's progress, or a zero Progress when none is recorded yet.
func (r *SQLiteProgressRepo) Get(ctx context.Context, userID string) (*domain.Progress, error) {
	query := `SELECT user_id, completed_tasks, streak, last_active_date, updated_at
		FROM progress WHERE user_id = ?`
	var p domain.Progress
	var updatedAt string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.CompletedTasks, &p.Streak, &p.LastActiveDate, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Progress{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning progress: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProgressRepo) Upsert(ctx context.Context, p *domain.Progress) error {
	query := `INSERT INTO progress (user_id, completed_tasks, streak, last_active_date, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			completed_tasks = excluded.completed_tasks,
			streak = excluded.streak,
			last_active_date = excluded.last_active_date,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID, p.CompletedTasks, p.Streak, p.LastActiveDate, formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting progress: %w", err)
	}
	return nil
}
