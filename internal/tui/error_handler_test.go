package tui

import (
	"testing"

	"github.com/derailed/tview"
	"github.com/stretchr/testify/assert"
)

func TestFormatMessage_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   MessageLevel
		message string
		want    string
	}{
		{"error", MessageLevelError, "boom", "[red]✗ boom[-]"},
		{"warning", MessageLevelWarning, "careful", "[yellow]⚠ careful[-]"},
		{"success", MessageLevelSuccess, "done", "[green]✓ done[-]"},
		{"progress", MessageLevelProgress, "working", "[blue]⏳ working[-]"},
		{"info", MessageLevelInfo, "hello", "[white]hello[-]"},
		{"trims whitespace", MessageLevelInfo, "  hello  ", "[white]hello[-]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMessage(tt.level, tt.message))
		})
	}
}

func TestFormatMessage_EscapesColorTags(t *testing.T) {
	got := formatMessage(MessageLevelInfo, "value [red]x[-]")
	assert.NotContains(t, got[7:], "[red]x")
}

func TestErrorHandler_WritesToStatusView(t *testing.T) {
	status := tview.NewTextView()
	eh := NewErrorHandler(nil, status, nil)

	eh.ShowError("request failed")
	assert.Contains(t, status.GetText(false), "request failed")

	eh.ShowProgress("loading")
	assert.Contains(t, status.GetText(false), "loading")

	eh.ClearProgress()
	assert.Equal(t, "", status.GetText(true))
}

func TestErrorHandler_StaleAutoClearLeavesNewerMessage(t *testing.T) {
	status := tview.NewTextView()
	eh := NewErrorHandler(nil, status, nil)

	eh.ShowError("boom")
	eh.mu.Lock()
	stale := eh.gen
	eh.mu.Unlock()

	eh.ShowProgress("working")

	// A timer armed for the error message must not wipe the progress
	// message that replaced it
	eh.clearIfCurrent(stale)
	assert.Contains(t, status.GetText(false), "working")

	eh.mu.Lock()
	current := eh.gen
	eh.mu.Unlock()
	eh.clearIfCurrent(current)
	assert.Equal(t, "", status.GetText(true))
}

func TestErrorHandler_NilStatusIsSafe(t *testing.T) {
	eh := NewErrorHandler(nil, nil, nil)
	assert.NotPanics(t, func() {
		eh.ShowError("no view yet")
		eh.ClearProgress()
	})
}
