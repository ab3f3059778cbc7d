package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

const scheduleColumns = `id, user_id, task, task_date, status, sort_order, note, created_at, updated_at`

func (r *SQLiteScheduleRepo) Create(ctx context.Context, t *domain.ScheduleTask) error {
	query := `INSERT INTO schedules (` + scheduleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Task, t.Date, string(t.Status), t.SortOrder, nullableString(t.Note),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule task: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("schedule task: %w", ErrNotFound)
	}
	return t, err
}

func (r *SQLiteScheduleRepo) ListRange(ctx context.Context, userID, from, to string) ([]*domain.ScheduleTask, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules
		WHERE user_id = ? AND task_date >= ? AND task_date <= ?
		ORDER BY task_date ASC, sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing schedule tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.ScheduleTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule tasks: %w", err)
	}
	return out, nil
}

// Append inserts t after the last task on its date and sets t.SortOrder.
// The next order is read and written by the same statement.
func (r *SQLiteScheduleRepo) Append(ctx context.Context, t *domain.ScheduleTask) error {
	query := `INSERT INTO schedules (` + scheduleColumns + `)
		SELECT ?, ?, ?, ?, ?, COALESCE(MAX(sort_order), -1) + 1, ?, ?, ?
		FROM schedules WHERE user_id = ? AND task_date = ?
		RETURNING sort_order`
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, t.Task, t.Date, string(t.Status), nullableString(t.Note),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
		t.UserID, t.Date,
	).Scan(&t.SortOrder)
	if err != nil {
		return fmt.Errorf("appending schedule task: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) Update(ctx context.Context, t *domain.ScheduleTask) error {
	query := `UPDATE schedules SET task = ?, task_date = ?, status = ?, sort_order = ?, note = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Task, t.Date, string(t.Status), t.SortOrder, nullableString(t.Note), formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("updating schedule task: %w", err)
	}
	return requireAffected(res, "schedule task")
}

// SwapOrder parks a on a sort order no real task uses so the
// (user, date, sort_order) uniqueness holds at every step. Callers that need
// atomicity run it inside a unit of work.
func (r *SQLiteScheduleRepo) SwapOrder(ctx context.Context, a, b *domain.ScheduleTask) error {
	const parked = -1
	steps := []struct {
		id    string
		order int
	}{
		{a.ID, parked},
		{b.ID, a.SortOrder},
		{a.ID, b.SortOrder},
	}
	for _, s := range steps {
		res, err := r.db.ExecContext(ctx, `UPDATE schedules SET sort_order = ? WHERE id = ?`, s.order, s.id)
		if err != nil {
			return fmt.Errorf("swapping sort order: %w", err)
		}
		if err := requireAffected(res, "schedule task"); err != nil {
			return err
		}
	}
	a.SortOrder, b.SortOrder = b.SortOrder, a.SortOrder
	return nil
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule task: %w", err)
	}
	return requireAffected(res, "schedule task")
}

func scanTask(row rowScanner) (*domain.ScheduleTask, error) {
	var t domain.ScheduleTask
	var status, createdAt, updatedAt string
	var note sql.NullString
	if err := row.Scan(&t.ID, &t.UserID, &t.Task, &t.Date, &status, &t.SortOrder, &note,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning schedule task: %w", err)
	}
	t.Status = domain.TaskStatus(status)
	t.Note = stringPtr(note)
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
