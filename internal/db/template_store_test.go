package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ajramos/echo-tui/internal/prompts"
)

func sampleTemplates() []prompts.Template {
	return []prompts.Template{
		{ID: "code-gen", Name: "Code Generation", Category: "code", Description: "d1", SystemPromptPrefix: "p1"},
		{ID: "blog", Name: "Blog Post", Category: "content", Description: "d2", SystemPromptPrefix: "p2"},
		{ID: "sql-query", Name: "SQL Query", Category: "data", Description: "d3", SystemPromptPrefix: "p3"},
	}
}

func TestNewTemplateStore_NilBase(t *testing.T) {
	assert.Nil(t, NewTemplateStore(nil))
}

func TestTemplateStore_NotInitialized(t *testing.T) {
	var ts *TemplateStore

	err := ts.ReplaceTemplates(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")

	_, err = ts.ListTemplates(context.Background(), "")
	assert.Error(t, err)
}

func TestTemplateStore_ReplaceAndList(t *testing.T) {
	ctx := context.Background()
	ts := NewTemplateStore(openTestStore(t))

	assert.NoError(t, ts.ReplaceTemplates(ctx, sampleTemplates()))

	listed, err := ts.ListTemplates(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, listed, 3)
	// Ordered by category then name
	assert.Equal(t, "code-gen", listed[0].ID)
	assert.Equal(t, "blog", listed[1].ID)
	assert.Equal(t, "sql-query", listed[2].ID)
	assert.Equal(t, "p1", listed[0].SystemPromptPrefix)
}

func TestTemplateStore_ListByCategory(t *testing.T) {
	ctx := context.Background()
	ts := NewTemplateStore(openTestStore(t))
	assert.NoError(t, ts.ReplaceTemplates(ctx, sampleTemplates()))

	listed, err := ts.ListTemplates(ctx, "content")
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "blog", listed[0].ID)
}

func TestTemplateStore_ReplaceIsWholesale(t *testing.T) {
	ctx := context.Background()
	ts := NewTemplateStore(openTestStore(t))
	assert.NoError(t, ts.ReplaceTemplates(ctx, sampleTemplates()))

	replacement := []prompts.Template{
		{ID: "research", Name: "Research", Category: "research"},
	}
	assert.NoError(t, ts.ReplaceTemplates(ctx, replacement))

	listed, err := ts.ListTemplates(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "research", listed[0].ID)
}

func TestTemplateStore_CachedAt(t *testing.T) {
	ctx := context.Background()
	ts := NewTemplateStore(openTestStore(t))

	cachedAt, err := ts.CachedAt(ctx)
	assert.NoError(t, err)
	assert.True(t, cachedAt.IsZero())

	assert.NoError(t, ts.ReplaceTemplates(ctx, sampleTemplates()))

	cachedAt, err = ts.CachedAt(ctx)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), cachedAt, 5*time.Second)
}
