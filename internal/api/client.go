package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ajramos/echo-tui/internal/prompts"
)

// TokenSource yields the current bearer token; an empty string means
// requests go out unauthenticated
type TokenSource func() string

// Client is a thin wrapper over the Echo REST API. It performs a single
// attempt per call; retry policy is the caller's concern.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
}

// NewClient creates a new Echo API client
func NewClient(baseURL string, timeout time.Duration, tokenSource TokenSource) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		tokenSource: tokenSource,
	}
}

// Enhance posts a weak prompt for PTCF enhancement
func (c *Client) Enhance(ctx context.Context, req EnhanceRequest) (*EnhanceResult, error) {
	var result EnhanceResult
	if err := c.doJSON(ctx, http.MethodPost, "/prompts/enhance/", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTemplates fetches the template list, optionally filtered by category.
// The backend may return either a paginated envelope or a raw list.
func (c *Client) ListTemplates(ctx context.Context, category string) ([]prompts.Template, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/templates/", query, nil, &raw); err != nil {
		return nil, err
	}

	return unwrapTemplateList(raw)
}

// GetResult retrieves a single enhancement result by id
func (c *Client) GetResult(ctx context.Context, id int) (*EnhanceResult, error) {
	var result EnhanceResult
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/prompts/%d/", id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History retrieves one page of the user's prompt history
func (c *Client) History(ctx context.Context, page int) (*HistoryPage, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", fmt.Sprintf("%d", page))
	}

	var result HistoryPage
	if err := c.doJSON(ctx, http.MethodGet, "/prompts/history/", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON issues a single JSON request and decodes the response into out
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to Echo API failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode Echo API response: %w", err)
	}
	return nil
}

// unwrapTemplateList accepts either {"results": [...]} or a bare array
func unwrapTemplateList(raw json.RawMessage) ([]prompts.Template, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page templatePage
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("could not decode template envelope: %w", err)
		}
		return page.Results, nil
	}

	var list []prompts.Template
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("could not decode template list: %w", err)
	}
	return list, nil
}
