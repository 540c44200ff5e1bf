package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ajramos/echo-tui/internal/prompts"
)

// SavedStore handles locally saved enhancement results
type SavedStore struct {
	db *sql.DB
}

// NewSavedStore creates a new saved prompt store from a base store
func NewSavedStore(store *Store) *SavedStore {
	if store == nil {
		return nil
	}
	return &SavedStore{db: store.DB()}
}

// SavePrompt inserts a saved prompt and returns its id
func (ss *SavedStore) SavePrompt(ctx context.Context, p *prompts.SavedPrompt) (int, error) {
	if ss == nil || ss.db == nil {
		return 0, fmt.Errorf("saved store not initialized")
	}
	if p == nil || strings.TrimSpace(p.ConsolidatedPrompt) == "" {
		return 0, fmt.Errorf("invalid saved prompt inputs")
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Untitled"
	}

	now := time.Now().Unix()
	res, err := ss.db.ExecContext(ctx,
		`INSERT INTO saved_prompts (title, notes, category, original_text, consolidated_prompt,
		   improvement_summary, model_used, is_favorite, created_at, last_accessed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		title, p.Notes, p.Category, p.OriginalText, p.ConsolidatedPrompt,
		p.ImprovementSummary, p.ModelUsed, boolToInt(p.IsFavorite), now, now)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// ListSavedPrompts returns saved prompts, most recently accessed first
func (ss *SavedStore) ListSavedPrompts(ctx context.Context, favoritesOnly bool) ([]*prompts.SavedPrompt, error) {
	if ss == nil || ss.db == nil {
		return nil, fmt.Errorf("saved store not initialized")
	}

	query := `SELECT id, title, notes, category, original_text, consolidated_prompt,
	                 improvement_summary, model_used, is_favorite, created_at, last_accessed
	          FROM saved_prompts`
	if favoritesOnly {
		query += ` WHERE is_favorite = 1`
	}
	query += ` ORDER BY last_accessed DESC`

	rows, err := ss.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var saved []*prompts.SavedPrompt
	for rows.Next() {
		p := &prompts.SavedPrompt{}
		var fav int
		err := rows.Scan(&p.ID, &p.Title, &p.Notes, &p.Category, &p.OriginalText,
			&p.ConsolidatedPrompt, &p.ImprovementSummary, &p.ModelUsed, &fav,
			&p.CreatedAt, &p.LastAccessed)
		if err != nil {
			return nil, err
		}
		p.IsFavorite = fav != 0
		saved = append(saved, p)
	}

	return saved, rows.Err()
}

// GetSavedPrompt returns a saved prompt by id and bumps its last_accessed
func (ss *SavedStore) GetSavedPrompt(ctx context.Context, id int) (*prompts.SavedPrompt, error) {
	if ss == nil || ss.db == nil {
		return nil, fmt.Errorf("saved store not initialized")
	}

	p := &prompts.SavedPrompt{}
	var fav int
	err := ss.db.QueryRowContext(ctx,
		`SELECT id, title, notes, category, original_text, consolidated_prompt,
		        improvement_summary, model_used, is_favorite, created_at, last_accessed
		 FROM saved_prompts WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Notes, &p.Category, &p.OriginalText,
			&p.ConsolidatedPrompt, &p.ImprovementSummary, &p.ModelUsed, &fav,
			&p.CreatedAt, &p.LastAccessed)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("saved prompt not found")
	}
	if err != nil {
		return nil, err
	}
	p.IsFavorite = fav != 0

	_, _ = ss.db.ExecContext(ctx,
		`UPDATE saved_prompts SET last_accessed = ? WHERE id = ?`, time.Now().Unix(), id)

	return p, nil
}

// ToggleFavorite flips the favorite flag and returns the new state
func (ss *SavedStore) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	if ss == nil || ss.db == nil {
		return false, fmt.Errorf("saved store not initialized")
	}

	res, err := ss.db.ExecContext(ctx,
		`UPDATE saved_prompts SET is_favorite = 1 - is_favorite WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("saved prompt not found")
	}

	var fav int
	if err := ss.db.QueryRowContext(ctx,
		`SELECT is_favorite FROM saved_prompts WHERE id = ?`, id).Scan(&fav); err != nil {
		return false, err
	}
	return fav != 0, nil
}

// DeleteSavedPrompt removes a saved prompt
func (ss *SavedStore) DeleteSavedPrompt(ctx context.Context, id int) error {
	if ss == nil || ss.db == nil {
		return fmt.Errorf("saved store not initialized")
	}

	res, err := ss.db.ExecContext(ctx, `DELETE FROM saved_prompts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("saved prompt not found")
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
