package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajramos/echo-tui/internal/db"
	"github.com/ajramos/echo-tui/internal/prompts"
)

func testTemplates() []prompts.Template {
	return []prompts.Template{
		{ID: "code-gen", Name: "Code Generation", Category: "code"},
		{ID: "blog", Name: "Blog Post", Category: "content"},
		{ID: "sql-query", Name: "SQL Query", Category: "data"},
		{ID: "story", Name: "Short Story", Category: "creative"},
	}
}

func openTemplateStore(t *testing.T) *db.TemplateStore {
	t.Helper()
	store, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return db.NewTemplateStore(store)
}

func TestTemplateService_ListFromBackend(t *testing.T) {
	client := &fakeEchoClient{templates: testTemplates()}
	service := NewTemplateService(client, nil, "", nil)

	templates, err := service.ListTemplates(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, templates, 4)
}

func TestTemplateService_BackendSuccessRefreshesCache(t *testing.T) {
	ctx := context.Background()
	store := openTemplateStore(t)
	client := &fakeEchoClient{templates: testTemplates()}
	service := NewTemplateService(client, store, "", nil)

	_, err := service.ListTemplates(ctx, "")
	require.NoError(t, err)

	cached, err := store.ListTemplates(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cached, 4)
}

func TestTemplateService_BackendFailureFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	store := openTemplateStore(t)
	require.NoError(t, store.ReplaceTemplates(ctx, testTemplates()))

	client := &fakeEchoClient{templatesErr: errors.New("connection refused")}
	service := NewTemplateService(client, store, "", nil)

	templates, err := service.ListTemplates(ctx, "")

	require.NoError(t, err)
	assert.Len(t, templates, 4)
}

func TestTemplateService_BackendFailureWithoutCache(t *testing.T) {
	client := &fakeEchoClient{templatesErr: errors.New("connection refused")}
	service := NewTemplateService(client, nil, "", nil)

	templates, err := service.ListTemplates(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, templates)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestTemplateService_LocalTemplatesMerged(t *testing.T) {
	dir := t.TempDir()
	content := `---
name: "Incident Report"
category: "business"
description: "Postmortem scaffold"
---

You are an incident commander writing a postmortem.`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "incident.md"), []byte(content), 0644))

	client := &fakeEchoClient{templates: testTemplates()}
	service := NewTemplateService(client, nil, dir, nil)

	templates, err := service.ListTemplates(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, templates, 5)
	last := templates[4]
	assert.Equal(t, "local:incident", last.ID)
	assert.Equal(t, "Incident Report", last.Name)
	assert.Equal(t, "business", last.Category)
	assert.Equal(t, "You are an incident commander writing a postmortem.", last.SystemPromptPrefix)
}

func TestTemplateService_LocalTemplateNameCollisionSkipped(t *testing.T) {
	dir := t.TempDir()
	content := `---
name: "Code Generation"
category: "code"
---
body`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codegen.md"), []byte(content), 0644))

	client := &fakeEchoClient{templates: testTemplates()}
	service := NewTemplateService(client, nil, dir, nil)

	templates, err := service.ListTemplates(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, templates, 4)
}

func TestTemplateService_FilterTemplates(t *testing.T) {
	service := NewTemplateService(nil, nil, "", nil)
	templates := testTemplates()

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty_query_retains_all", "", []string{"code-gen", "blog", "sql-query", "story"}},
		{"whitespace_query_retains_all", "   ", []string{"code-gen", "blog", "sql-query", "story"}},
		{"matches_name", "blog", []string{"blog"}},
		{"matches_category", "creative", []string{"story"}},
		{"case_insensitive", "CODE", []string{"code-gen"}},
		{"substring", "quer", []string{"sql-query"}},
		{"no_match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := service.FilterTemplates(templates, tt.query)
			ids := make([]string, 0, len(filtered))
			for _, f := range filtered {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestParseFrontMatter_Valid(t *testing.T) {
	content := []byte(`---
name: "Test Template"
description: "A description"
category: "general"
---

This is the system prompt.
With multiple lines.`)

	fm, body, err := parseFrontMatter(content)

	require.NoError(t, err)
	assert.Equal(t, "Test Template", fm.Name)
	assert.Equal(t, "A description", fm.Description)
	assert.Equal(t, "general", fm.Category)
	assert.Equal(t, "This is the system prompt.\nWith multiple lines.", body)
}

func TestParseFrontMatter_NoFrontMatter(t *testing.T) {
	_, _, err := parseFrontMatter([]byte(`just content`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "front matter")
}

func TestParseFrontMatter_Unterminated(t *testing.T) {
	_, _, err := parseFrontMatter([]byte("---\nname: x\nno closing marker"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")
}

func TestParseFrontMatter_InvalidYAML(t *testing.T) {
	_, _, err := parseFrontMatter([]byte("---\nname: [unclosed\n---\nbody"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid front matter")
}
