package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ajramos/echo-tui/internal/prompts"
)

// TemplateStore caches backend templates locally so the picker keeps working
// when the backend is unreachable
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new template store from a base store
func NewTemplateStore(store *Store) *TemplateStore {
	if store == nil {
		return nil
	}
	return &TemplateStore{db: store.DB()}
}

// ReplaceTemplates replaces the cached template set wholesale
func (ts *TemplateStore) ReplaceTemplates(ctx context.Context, templates []prompts.Template) error {
	if ts == nil || ts.db == nil {
		return fmt.Errorf("template store not initialized")
	}

	tx, err := ts.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM template_cache`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear template cache: %w", err)
	}

	now := time.Now().Unix()
	for _, t := range templates {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO template_cache (id, name, category, description, system_prompt_prefix, cached_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Category, t.Description, t.SystemPromptPrefix, now)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("cache template %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// ListTemplates returns cached templates, optionally filtered by category
func (ts *TemplateStore) ListTemplates(ctx context.Context, category string) ([]prompts.Template, error) {
	if ts == nil || ts.db == nil {
		return nil, fmt.Errorf("template store not initialized")
	}

	query := `SELECT id, name, category, description, system_prompt_prefix FROM template_cache`
	args := []interface{}{}

	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}

	query += ` ORDER BY category ASC, name ASC`

	rows, err := ts.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var templates []prompts.Template
	for rows.Next() {
		t := prompts.Template{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Description, &t.SystemPromptPrefix); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

// CachedAt returns the timestamp of the newest cache entry, zero when empty
func (ts *TemplateStore) CachedAt(ctx context.Context) (time.Time, error) {
	if ts == nil || ts.db == nil {
		return time.Time{}, fmt.Errorf("template store not initialized")
	}

	var unix sql.NullInt64
	err := ts.db.QueryRowContext(ctx, `SELECT MAX(cached_at) FROM template_cache`).Scan(&unix)
	if err != nil {
		return time.Time{}, err
	}
	if !unix.Valid {
		return time.Time{}, nil
	}
	return time.Unix(unix.Int64, 0), nil
}
