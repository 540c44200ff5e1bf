package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajramos/echo-tui/internal/db"
	"github.com/ajramos/echo-tui/internal/prompts"
)

// TemplateServiceImpl implements TemplateService
type TemplateServiceImpl struct {
	client   EchoClient
	store    *db.TemplateStore
	localDir string
	logger   *log.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(client EchoClient, store *db.TemplateStore, localDir string, logger *log.Logger) *TemplateServiceImpl {
	return &TemplateServiceImpl{
		client:   client,
		store:    store,
		localDir: localDir,
		logger:   logger,
	}
}

// ListTemplates returns the backend template list merged with local template
// files. A backend failure is not fatal: the cached set is served instead, so
// the picker keeps working offline.
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, category string) ([]prompts.Template, error) {
	var templates []prompts.Template

	if s.client != nil {
		remote, err := s.client.ListTemplates(ctx, category)
		if err == nil {
			templates = remote
			if s.store != nil && category == "" {
				if cacheErr := s.store.ReplaceTemplates(ctx, remote); cacheErr != nil && s.logger != nil {
					s.logger.Printf("could not refresh template cache: %v", cacheErr)
				}
			}
		} else {
			if s.logger != nil {
				s.logger.Printf("template fetch failed, falling back to cache: %v", err)
			}
			cached, cacheErr := s.cachedTemplates(ctx, category)
			if cacheErr != nil {
				return nil, err
			}
			templates = cached
		}
	} else {
		cached, err := s.cachedTemplates(ctx, category)
		if err != nil {
			return nil, err
		}
		templates = cached
	}

	local := s.localTemplates(category)
	if len(local) > 0 {
		templates = mergeTemplates(templates, local)
	}

	return templates, nil
}

// FilterTemplates retains the templates whose name or category contains the
// query, case-insensitively. An empty query retains all.
func (s *TemplateServiceImpl) FilterTemplates(templates []prompts.Template, query string) []prompts.Template {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return templates
	}

	filtered := make([]prompts.Template, 0, len(templates))
	for _, t := range templates {
		if strings.Contains(strings.ToLower(t.Name), query) ||
			strings.Contains(strings.ToLower(t.Category), query) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func (s *TemplateServiceImpl) cachedTemplates(ctx context.Context, category string) ([]prompts.Template, error) {
	if s.store == nil {
		return nil, fmt.Errorf("template cache not available")
	}
	return s.store.ListTemplates(ctx, category)
}

// localTemplates loads template files from the local templates directory.
// Files are markdown with a YAML front matter header; unreadable files are
// skipped with a log line.
func (s *TemplateServiceImpl) localTemplates(category string) []prompts.Template {
	if s.localDir == "" {
		return nil
	}

	entries, err := os.ReadDir(s.localDir)
	if err != nil {
		return nil
	}

	var local []prompts.Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.localDir, entry.Name()))
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("could not read local template %s: %v", entry.Name(), err)
			}
			continue
		}

		fm, body, err := parseFrontMatter(data)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("could not parse local template %s: %v", entry.Name(), err)
			}
			continue
		}

		name := fm.Name
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".md")
		}

		t := prompts.Template{
			ID:                 "local:" + strings.TrimSuffix(entry.Name(), ".md"),
			Name:               name,
			Category:           fm.Category,
			Description:        fm.Description,
			SystemPromptPrefix: body,
		}
		if category != "" && !strings.EqualFold(t.Category, category) {
			continue
		}
		local = append(local, t)
	}

	sort.Slice(local, func(i, j int) bool { return local[i].Name < local[j].Name })
	return local
}

// parseFrontMatter splits a template file into its YAML header and body.
// The header is delimited by --- lines at the top of the file.
func parseFrontMatter(content []byte) (prompts.TemplateFrontMatter, string, error) {
	var fm prompts.TemplateFrontMatter

	trimmed := bytes.TrimLeft(content, "\r\n")
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return fm, "", fmt.Errorf("missing front matter header")
	}

	rest := trimmed[3:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return fm, "", fmt.Errorf("unterminated front matter header")
	}

	header := rest[:end]
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, "", fmt.Errorf("invalid front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return fm, strings.TrimSpace(string(body)), nil
}

// mergeTemplates appends local templates that do not collide with a remote
// template of the same name
func mergeTemplates(remote, local []prompts.Template) []prompts.Template {
	seen := make(map[string]bool, len(remote))
	for _, t := range remote {
		seen[strings.ToLower(t.Name)] = true
	}

	merged := remote
	for _, t := range local {
		if !seen[strings.ToLower(t.Name)] {
			merged = append(merged, t)
		}
	}
	return merged
}
