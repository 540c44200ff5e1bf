package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/derailed/tview"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/render"
	"github.com/ajramos/echo-tui/internal/services"
)

// submitEnhance kicks off an enhancement request. The editor content is
// left untouched until a result comes back, so a failure never loses work.
func (a *App) submitEnhance() {
	text := strings.TrimSpace(a.editor.GetText())
	if text == "" {
		a.GetErrorHandler().ShowWarning("Enter a prompt first")
		return
	}

	a.mu.Lock()
	if a.enhanceInFlight {
		a.mu.Unlock()
		return
	}
	a.enhanceInFlight = true
	opts := services.EnhanceOptions{
		PromptText:   text,
		Temperature:  a.temperature,
		MaxTokens:    a.maxTokens,
		SystemPrompt: a.systemPrompt,
	}
	if a.selectedTemplate != nil {
		opts.TemplateID = a.selectedTemplate.ID
	}
	a.mu.Unlock()

	a.GetErrorHandler().ShowProgress("Enhancing prompt...")

	go func() {
		result, err := a.enhanceService.Enhance(a.ctx, opts)

		a.mu.Lock()
		a.enhanceInFlight = false
		a.mu.Unlock()

		if err != nil {
			if a.logger != nil {
				a.logger.Printf("enhance failed: %v", err)
			}
			msg := enhanceErrorMessage(err)
			a.QueueUpdateDraw(func() {
				a.GetErrorHandler().ShowError(msg)
			})
			return
		}

		a.mu.Lock()
		a.currentResult = result
		a.mu.Unlock()

		a.QueueUpdateDraw(func() {
			a.GetErrorHandler().ClearProgress()
			a.showResult(result)
		})
	}()
}

// showResult renders an enhancement result and switches to the result view
func (a *App) showResult(result *api.EnhanceResult) {
	tv, ok := a.views["result"].(*tview.TextView)
	if !ok {
		return
	}
	a.mu.Lock()
	a.currentSaved = nil
	a.mu.Unlock()
	tv.SetText(tview.Escape(render.FormatEnhancedResult(result, render.FormatOptions{})))
	tv.ScrollToBeginning()
	a.switchToView(viewResult)
}

// newPrompt resets the session for another enhancement. The template
// selection survives so repeated runs keep the same framing.
func (a *App) newPrompt() {
	a.mu.Lock()
	a.currentResult = nil
	a.currentSaved = nil
	a.templateFilter = ""
	a.mu.Unlock()

	a.editor.Clear()
	if search, ok := a.views["search"].(*tview.InputField); ok {
		search.SetText("")
	}
	a.reloadTemplateList("")
	a.switchToView(viewInput)
}

// saveCurrentResult stores the displayed result locally
func (a *App) saveCurrentResult(title string) {
	a.mu.RLock()
	result := a.currentResult
	a.mu.RUnlock()
	if result == nil {
		a.GetErrorHandler().ShowWarning("No result to save")
		return
	}

	var category string
	if t := a.SelectedTemplate(); t != nil {
		category = t.Category
	}

	go func() {
		id, err := a.savedService.SaveResult(a.ctx, result, title, "", category)
		a.QueueUpdateDraw(func() {
			if err != nil {
				a.GetErrorHandler().ShowError(fmt.Sprintf("Save failed: %v", err))
				return
			}
			a.GetErrorHandler().ShowSuccess(fmt.Sprintf("Saved prompt #%d", id))
		})
	}()
}

// enhanceErrorMessage maps service errors to a short user-facing line.
// Validation errors surface the server's own message when it has one.
func enhanceErrorMessage(err error) string {
	var apiErr *api.APIError

	switch {
	case errors.Is(err, services.ErrEmptyPrompt):
		return "Enter a prompt first"
	case errors.Is(err, services.ErrTimeout):
		return "The request timed out, try again"
	case errors.Is(err, services.ErrUnauthorized):
		return "Authentication failed, check your token"
	case errors.Is(err, services.ErrServiceUnavailable):
		return "The Echo backend is unavailable, try again later"
	case errors.Is(err, services.ErrInvalidInput):
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return "The backend rejected the request"
	case errors.Is(err, services.ErrNetworkUnavailable):
		return "Cannot reach the Echo backend"
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Server returned status %d", apiErr.StatusCode)
	default:
		return fmt.Sprintf("Enhancement failed: %v", err)
	}
}
