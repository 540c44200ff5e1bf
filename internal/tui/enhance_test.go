package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/prompts"
	"github.com/ajramos/echo-tui/internal/services"
)

// fakeEnhanceService counts calls and can block until released
type fakeEnhanceService struct {
	mu       sync.Mutex
	calls    int
	lastOpts services.EnhanceOptions
	release  chan struct{}
	result   *api.EnhanceResult
	err      error
}

func (f *fakeEnhanceService) Enhance(ctx context.Context, opts services.EnhanceOptions) (*api.EnhanceResult, error) {
	f.mu.Lock()
	f.calls++
	f.lastOpts = opts
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeEnhanceService) GetResult(ctx context.Context, id int) (*api.EnhanceResult, error) {
	return &api.EnhanceResult{ID: id}, nil
}

func (f *fakeEnhanceService) History(ctx context.Context, page int) (*api.HistoryPage, error) {
	return &api.HistoryPage{}, nil
}

func (f *fakeEnhanceService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func inFlight(app *App) bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.enhanceInFlight
}

func TestSubmitEnhance_SingleRequestInFlight(t *testing.T) {
	app := newTestApp(t)
	fake := &fakeEnhanceService{
		release: make(chan struct{}),
		result:  &api.EnhanceResult{ID: 1, Enhanced: api.EnhancedPrompt{ConsolidatedPrompt: "done"}},
	}
	app.enhanceService = fake
	app.editor.SetText("my draft")

	// Repeated submissions while the first request is pending must not
	// dispatch again
	app.submitEnhance()
	app.submitEnhance()
	app.submitEnhance()

	assert.True(t, inFlight(app))
	close(fake.release)

	require.Eventually(t, func() bool { return !inFlight(app) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, fake.callCount())
}

func TestSubmitEnhance_FailureKeepsDraftAndView(t *testing.T) {
	app := newTestApp(t)
	fake := &fakeEnhanceService{
		err: errors.Join(services.ErrServiceUnavailable, &api.APIError{StatusCode: 503}),
	}
	app.enhanceService = fake
	app.editor.SetText("my draft")

	app.submitEnhance()

	require.Eventually(t, func() bool { return !inFlight(app) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "my draft", app.editor.GetText())
	assert.Equal(t, viewInput, app.CurrentView())
	app.mu.RLock()
	assert.Nil(t, app.currentResult)
	app.mu.RUnlock()
}

func TestSubmitEnhance_WhitespaceNeverDispatches(t *testing.T) {
	app := newTestApp(t)
	fake := &fakeEnhanceService{}
	app.enhanceService = fake
	app.editor.SetText("   \n\t ")

	app.submitEnhance()

	assert.False(t, inFlight(app))
	assert.Equal(t, 0, fake.callCount())
}

func TestSubmitEnhance_SendsSelectionAndOverrides(t *testing.T) {
	app := newTestApp(t)
	fake := &fakeEnhanceService{
		result: &api.EnhanceResult{ID: 2},
	}
	app.enhanceService = fake

	tpl := prompts.Template{ID: "tpl-9", Name: "Code Review", Category: "code"}
	app.applyTemplate(&tpl)
	app.applyAdvancedSettings(0.8, 1024, "")
	app.editor.SetText("review this")

	app.submitEnhance()
	require.Eventually(t, func() bool { return !inFlight(app) }, time.Second, 5*time.Millisecond)

	fake.mu.Lock()
	opts := fake.lastOpts
	fake.mu.Unlock()
	assert.Equal(t, "review this", opts.PromptText)
	assert.Equal(t, "tpl-9", opts.TemplateID)
	assert.Equal(t, 0.8, opts.Temperature)
	assert.Equal(t, 1024, opts.MaxTokens)
	assert.Empty(t, opts.SystemPrompt)
}
