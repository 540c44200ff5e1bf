package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajramos/echo-tui/internal/api"
)

// Backend serializer bounds for enhancement requests
const (
	minTemperature = 0.1
	maxTemperature = 1.0
	minMaxTokens   = 256
	maxMaxTokens   = 4096

	defaultTemperature = 0.3
	defaultMaxTokens   = 2048
)

// EnhanceServiceImpl implements EnhanceService
type EnhanceServiceImpl struct {
	client EchoClient
}

// NewEnhanceService creates a new enhance service
func NewEnhanceService(client EchoClient) *EnhanceServiceImpl {
	return &EnhanceServiceImpl{client: client}
}

// Enhance validates the options, builds the wire request and performs a single
// enhancement call. Empty prompt text never reaches the network.
func (s *EnhanceServiceImpl) Enhance(ctx context.Context, opts EnhanceOptions) (*api.EnhanceResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("API client not available")
	}

	text := strings.TrimSpace(opts.PromptText)
	if text == "" {
		return nil, ErrEmptyPrompt
	}

	req := api.EnhanceRequest{
		PromptText:         text,
		TemplateID:         opts.TemplateID,
		Temperature:        clampTemperature(opts.Temperature),
		MaxTokens:          clampMaxTokens(opts.MaxTokens),
		CustomSystemPrompt: strings.TrimSpace(opts.SystemPrompt),
	}

	result, err := s.client.Enhance(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to enhance prompt: %w", classifyError(err))
	}

	return result, nil
}

// GetResult retrieves a single enhancement result by id
func (s *EnhanceServiceImpl) GetResult(ctx context.Context, id int) (*api.EnhanceResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("API client not available")
	}

	result, err := s.client.GetResult(ctx, id)
	if err != nil {
		return nil, classifyError(err)
	}
	return result, nil
}

// History retrieves one page of past enhancements
func (s *EnhanceServiceImpl) History(ctx context.Context, page int) (*api.HistoryPage, error) {
	if s.client == nil {
		return nil, fmt.Errorf("API client not available")
	}
	if page < 1 {
		page = 1
	}

	result, err := s.client.History(ctx, page)
	if err != nil {
		return nil, classifyError(err)
	}
	return result, nil
}

// clampTemperature maps a temperature into the serializer range, substituting
// the backend default for the zero value
func clampTemperature(t float64) float64 {
	if t == 0 {
		return defaultTemperature
	}
	if t < minTemperature {
		return minTemperature
	}
	if t > maxTemperature {
		return maxTemperature
	}
	return t
}

// clampMaxTokens maps a token budget into the serializer range, substituting
// the backend default for the zero value
func clampMaxTokens(n int) int {
	if n == 0 {
		return defaultMaxTokens
	}
	if n < minMaxTokens {
		return minMaxTokens
	}
	if n > maxMaxTokens {
		return maxMaxTokens
	}
	return n
}
