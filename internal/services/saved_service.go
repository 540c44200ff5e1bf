package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/db"
	"github.com/ajramos/echo-tui/internal/prompts"
)

// SavedServiceImpl implements SavedService over the local SQLite store.
// Saving stays local: the backend's saved-prompt endpoint is not part of the
// contract this client depends on.
type SavedServiceImpl struct {
	store *db.SavedStore
}

// NewSavedService creates a new saved prompt service
func NewSavedService(store *db.SavedStore) *SavedServiceImpl {
	return &SavedServiceImpl{store: store}
}

// SaveResult stores an enhancement result locally under the given title
func (s *SavedServiceImpl) SaveResult(ctx context.Context, result *api.EnhanceResult, title, notes, category string) (int, error) {
	if s.store == nil {
		return 0, ErrStoreUnavailable
	}
	if result == nil {
		return 0, fmt.Errorf("no result to save")
	}

	if strings.TrimSpace(title) == "" {
		title = defaultTitle(result.OriginalText)
	}

	saved := &prompts.SavedPrompt{
		Title:              title,
		Notes:              notes,
		Category:           category,
		OriginalText:       result.OriginalText,
		ConsolidatedPrompt: result.Enhanced.ConsolidatedPrompt,
		ImprovementSummary: result.Enhanced.ImprovementSummary,
		ModelUsed:          result.Enhanced.ModelUsed,
	}

	return s.store.SavePrompt(ctx, saved)
}

// ListSaved returns locally saved prompts
func (s *SavedServiceImpl) ListSaved(ctx context.Context, favoritesOnly bool) ([]*prompts.SavedPrompt, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	return s.store.ListSavedPrompts(ctx, favoritesOnly)
}

// GetSaved returns one saved prompt by id
func (s *SavedServiceImpl) GetSaved(ctx context.Context, id int) (*prompts.SavedPrompt, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	return s.store.GetSavedPrompt(ctx, id)
}

// ToggleFavorite flips the favorite flag and returns the new state
func (s *SavedServiceImpl) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	if s.store == nil {
		return false, ErrStoreUnavailable
	}
	return s.store.ToggleFavorite(ctx, id)
}

// DeleteSaved removes a saved prompt
func (s *SavedServiceImpl) DeleteSaved(ctx context.Context, id int) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	return s.store.DeleteSavedPrompt(ctx, id)
}

// defaultTitle derives a title from the original prompt text
func defaultTitle(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > 60 {
		text = string(runes[:57]) + "..."
	}
	if text == "" {
		text = "Untitled"
	}
	return text
}
