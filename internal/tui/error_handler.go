package tui

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tview"
)

// MessageLevel indicates the severity of a status message
type MessageLevel int

const (
	MessageLevelInfo MessageLevel = iota
	MessageLevelSuccess
	MessageLevelWarning
	MessageLevelError
	MessageLevelProgress
)

// statusClearDelay is how long transient messages stay on screen
const statusClearDelay = 4 * time.Second

// ErrorHandler centralizes user-facing status and error messages.
// All messages land in the status bar; errors additionally go to the log.
type ErrorHandler struct {
	app    *App
	status *tview.TextView
	logger *log.Logger

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewErrorHandler creates an error handler bound to the status bar
func NewErrorHandler(app *App, status *tview.TextView, logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{
		app:    app,
		status: status,
		logger: logger,
	}
}

// ShowError displays an error message
func (eh *ErrorHandler) ShowError(message string) {
	if eh.logger != nil {
		eh.logger.Printf("ERROR: %s", message)
	}
	eh.show(formatMessage(MessageLevelError, message), true)
}

// ShowWarning displays a warning message
func (eh *ErrorHandler) ShowWarning(message string) {
	eh.show(formatMessage(MessageLevelWarning, message), true)
}

// ShowSuccess displays a success message
func (eh *ErrorHandler) ShowSuccess(message string) {
	eh.show(formatMessage(MessageLevelSuccess, message), true)
}

// ShowInfo displays an informational message
func (eh *ErrorHandler) ShowInfo(message string) {
	eh.show(formatMessage(MessageLevelInfo, message), true)
}

// ShowProgress displays a persistent progress message. It stays on
// screen until ClearProgress or another message replaces it.
func (eh *ErrorHandler) ShowProgress(message string) {
	eh.show(formatMessage(MessageLevelProgress, message), false)
}

// ClearProgress removes a progress message and restores the baseline
func (eh *ErrorHandler) ClearProgress() {
	eh.show(eh.baseline(), false)
}

func (eh *ErrorHandler) show(text string, autoClear bool) {
	eh.mu.Lock()
	eh.gen++
	g := eh.gen
	if eh.timer != nil {
		eh.timer.Stop()
		eh.timer = nil
	}
	if autoClear {
		eh.timer = time.AfterFunc(statusClearDelay, func() {
			eh.clearIfCurrent(g)
		})
	}
	eh.mu.Unlock()

	eh.setStatus(text)
}

// clearIfCurrent restores the baseline unless a newer message has replaced
// the one the timer was armed for. A timer that slipped past Stop sees a
// stale generation and leaves the newer message alone.
func (eh *ErrorHandler) clearIfCurrent(g uint64) {
	eh.mu.Lock()
	current := eh.gen == g
	eh.mu.Unlock()
	if current {
		eh.setStatus(eh.baseline())
	}
}

func (eh *ErrorHandler) setStatus(text string) {
	if eh.status == nil {
		return
	}
	if eh.app != nil && eh.app.uiReady {
		eh.app.QueueUpdateDraw(func() {
			eh.status.SetText(text)
		})
		return
	}
	eh.status.SetText(text)
}

// baseline is the hint line shown when no message is active
func (eh *ErrorHandler) baseline() string {
	if eh.app == nil {
		return ""
	}
	return eh.app.statusHint()
}

// formatMessage prefixes a message with its severity marker
func formatMessage(level MessageLevel, message string) string {
	message = strings.TrimSpace(message)
	switch level {
	case MessageLevelError:
		return fmt.Sprintf("[red]✗ %s[-]", tview.Escape(message))
	case MessageLevelWarning:
		return fmt.Sprintf("[yellow]⚠ %s[-]", tview.Escape(message))
	case MessageLevelSuccess:
		return fmt.Sprintf("[green]✓ %s[-]", tview.Escape(message))
	case MessageLevelProgress:
		return fmt.Sprintf("[blue]⏳ %s[-]", tview.Escape(message))
	default:
		return fmt.Sprintf("[white]%s[-]", tview.Escape(message))
	}
}
