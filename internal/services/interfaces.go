package services

import (
	"context"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/prompts"
)

// EchoClient is the slice of the API client the services depend on
type EchoClient interface {
	Enhance(ctx context.Context, req api.EnhanceRequest) (*api.EnhanceResult, error)
	ListTemplates(ctx context.Context, category string) ([]prompts.Template, error)
	GetResult(ctx context.Context, id int) (*api.EnhanceResult, error)
	History(ctx context.Context, page int) (*api.HistoryPage, error)
}

// EnhanceOptions carries the user-visible knobs for one enhancement
type EnhanceOptions struct {
	PromptText   string
	TemplateID   string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// EnhanceService handles prompt enhancement business logic
type EnhanceService interface {
	Enhance(ctx context.Context, opts EnhanceOptions) (*api.EnhanceResult, error)
	GetResult(ctx context.Context, id int) (*api.EnhanceResult, error)
	History(ctx context.Context, page int) (*api.HistoryPage, error)
}

// TemplateService handles template listing, caching and filtering
type TemplateService interface {
	ListTemplates(ctx context.Context, category string) ([]prompts.Template, error)
	FilterTemplates(templates []prompts.Template, query string) []prompts.Template
}

// SavedService handles locally saved enhancement results
type SavedService interface {
	SaveResult(ctx context.Context, result *api.EnhanceResult, title, notes, category string) (int, error)
	ListSaved(ctx context.Context, favoritesOnly bool) ([]*prompts.SavedPrompt, error)
	GetSaved(ctx context.Context, id int) (*prompts.SavedPrompt, error)
	ToggleFavorite(ctx context.Context, id int) (bool, error)
	DeleteSaved(ctx context.Context, id int) error
}
