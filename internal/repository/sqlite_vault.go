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

// SQLiteVaultRepo implements VaultRepo. Tags are stored as a JSON array.
type SQLiteVaultRepo struct {
	db db.DBTX
}

func NewSQLiteVaultRepo(conn db.DBTX) *SQLiteVaultRepo {
	return &SQLiteVaultRepo{db: conn}
}

const vaultColumns = `id, user_id, title, content, tags, category, created_at, updated_at`

func (r *SQLiteVaultRepo) Create(ctx context.Context, p *domain.VaultPrompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return err
	}
	query := `INSERT INTO prompt_vault (` + vaultColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Title, p.Content, tags, p.Category,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting vault prompt: %w", err)
	}
	return nil
}

func (r *SQLiteVaultRepo) GetByID(ctx context.Context, id string) (*domain.VaultPrompt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vaultColumns+` FROM prompt_vault WHERE id = ?`, id)
	p, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vault prompt: %w", ErrNotFound)
	}
	return p, err
}

func (r *SQLiteVaultRepo) ListByUser(ctx context.Context, userID string) ([]*domain.VaultPrompt, error) {
	query := `SELECT ` + vaultColumns + ` FROM prompt_vault
		WHERE user_id = ? ORDER BY updated_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing vault prompts: %w", err)
	}
	defer rows.Close()

	var out []*domain.VaultPrompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vault prompts: %w", err)
	}
	return out, nil
}

func (r *SQLiteVaultRepo) Update(ctx context.Context, p *domain.VaultPrompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return err
	}
	query := `UPDATE prompt_vault SET title = ?, content = ?, tags = ?, category = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Content, tags, p.Category, formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("updating vault prompt: %w", err)
	}
	return requireAffected(res, "vault prompt")
}

func (r *SQLiteVaultRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prompt_vault WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting vault prompt: %w", err)
	}
	return requireAffected(res, "vault prompt")
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(b), nil
}

func scanPrompt(row rowScanner) (*domain.VaultPrompt, error) {
	var p domain.VaultPrompt
	var tags, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &tags, &p.Category,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning vault prompt: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
