package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
)

// SQLiteRoadmapRepo stores roadmap content as a JSON document per goal.
type SQLiteRoadmapRepo struct {
	db db.DBTX
}

func NewSQLiteRoadmapRepo(conn db.DBTX) *SQLiteRoadmapRepo {
	return &SQLiteRoadmapRepo{db: conn}
}

// Upsert keeps the first roadmap's id and created_at when a goal is
// regenerated; r.ID and r.CreatedAt are refreshed from the stored row.
func (r *SQLiteRoadmapRepo) Upsert(ctx context.Context, rm *domain.Roadmap) error {
	content, err := json.Marshal(rm.Content)
	if err != nil {
		return fmt.Errorf("encoding roadmap content: %w", err)
	}
	query := `INSERT INTO roadmaps (id, goal_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(goal_id) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
		RETURNING id, created_at`
	var createdAt string
	err = r.db.QueryRowContext(ctx, query,
		rm.ID, rm.GoalID, string(content), formatTime(rm.CreatedAt), formatTime(rm.UpdatedAt),
	).Scan(&rm.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("upserting roadmap: %w", err)
	}
	if rm.CreatedAt, err = parseTime(createdAt); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	return nil
}

func (r *SQLiteRoadmapRepo) GetByGoal(ctx context.Context, goalID string) (*domain.Roadmap, error) {
	query := `SELECT id, goal_id, content, created_at, updated_at FROM roadmaps WHERE goal_id = ?`
	var rm domain.Roadmap
	var content, createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, goalID).Scan(&rm.ID, &rm.GoalID, &content, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("roadmap: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning roadmap: %w", err)
	}
	if err := json.Unmarshal([]byte(content), &rm.Content); err != nil {
		return nil, fmt.Errorf("decoding roadmap content: %w", err)
	}
	if rm.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rm.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rm, nil
}
