package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/derailed/tview"
)

// showAdvancedForm opens the generation settings modal
func (a *App) showAdvancedForm() {
	a.mu.RLock()
	temperature := a.temperature
	maxTokens := a.maxTokens
	systemPrompt := a.systemPrompt
	a.mu.RUnlock()

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(" Advanced Settings ")
	form.SetTitleAlign(tview.AlignLeft)

	form.AddInputField("Temperature (0.1-1.0)", strconv.FormatFloat(temperature, 'f', -1, 64), 10, nil, nil)
	form.AddInputField("Max tokens (256-4096)", strconv.Itoa(maxTokens), 10, nil, nil)
	form.AddInputField("Custom system prompt", systemPrompt, 0, nil, nil)

	form.AddButton("Apply", func() {
		tempStr := form.GetFormItem(0).(*tview.InputField).GetText()
		tokensStr := form.GetFormItem(1).(*tview.InputField).GetText()
		prompt := strings.TrimSpace(form.GetFormItem(2).(*tview.InputField).GetText())

		temp, err := strconv.ParseFloat(strings.TrimSpace(tempStr), 64)
		if err != nil {
			a.GetErrorHandler().ShowError("Temperature must be a number")
			return
		}
		tokens, err := strconv.Atoi(strings.TrimSpace(tokensStr))
		if err != nil {
			a.GetErrorHandler().ShowError("Max tokens must be a number")
			return
		}

		a.applyAdvancedSettings(temp, tokens, prompt)
		a.closeModal("advanced")
		a.GetErrorHandler().ShowInfo(a.advancedSummary())
	})
	form.AddButton("Reset", func() {
		a.applyAdvancedSettings(a.Config.Enhance.Temperature, a.Config.Enhance.MaxTokens, "")
		a.closeModal("advanced")
		a.GetErrorHandler().ShowInfo("Settings reset to defaults")
	})
	form.AddButton("Cancel", func() {
		a.closeModal("advanced")
	})
	form.SetCancelFunc(func() {
		a.closeModal("advanced")
	})

	a.showModal("advanced", form, 60, 13)
}

// applyAdvancedSettings records the overrides. A non-empty custom
// system prompt replaces the template framing, so the selection drops.
func (a *App) applyAdvancedSettings(temperature float64, maxTokens int, systemPrompt string) {
	a.mu.Lock()
	a.temperature = temperature
	a.maxTokens = maxTokens
	a.systemPrompt = systemPrompt
	if systemPrompt != "" {
		a.selectedTemplate = nil
	}
	filter := a.templateFilter
	a.mu.Unlock()

	if systemPrompt != "" {
		a.reloadTemplateList(filter)
	}
}

// advancedSummary describes the active overrides for the status bar
func (a *App) advancedSummary() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.systemPrompt != "" {
		return fmt.Sprintf("temp=%.1f tokens=%d custom system prompt set", a.temperature, a.maxTokens)
	}
	return fmt.Sprintf("temp=%.1f tokens=%d", a.temperature, a.maxTokens)
}

// showSaveForm asks for a title before saving the current result
func (a *App) showSaveForm() {
	a.mu.RLock()
	hasResult := a.currentResult != nil
	a.mu.RUnlock()
	if !hasResult {
		a.GetErrorHandler().ShowWarning("No result to save")
		return
	}

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(" Save Prompt ")
	form.SetTitleAlign(tview.AlignLeft)

	form.AddInputField("Title (optional)", "", 0, nil, nil)
	form.AddButton("Save", func() {
		title := strings.TrimSpace(form.GetFormItem(0).(*tview.InputField).GetText())
		a.closeModal("save")
		a.saveCurrentResult(title)
	})
	form.AddButton("Cancel", func() {
		a.closeModal("save")
	})
	form.SetCancelFunc(func() {
		a.closeModal("save")
	})

	a.showModal("save", form, 60, 9)
}

// showHelp displays the key binding reference
func (a *App) showHelp() {
	k := a.Keys
	text := fmt.Sprintf(`Echo turns a rough prompt into a structured one.

Input view
  %-8s submit prompt for enhancement
  %-8s focus template list ("/" to search)
  %-8s advanced settings
  %-8s enhancement history
  %-8s saved prompts

Result view
  %-8s start a new prompt
  %-8s save this result

Anywhere
  %-8s this help
  %-8s quit`,
		k.Submit, k.Templates, k.Advanced, k.History, k.SavedPrompts,
		k.NewPrompt, k.SavePrompt, k.Help, k.Quit)

	help := tview.NewTextView()
	help.SetText(text)
	help.SetBorder(true)
	help.SetTitle(" Help ")
	help.SetTitleAlign(tview.AlignLeft)
	help.SetInputCapture(a.modalEscape("help"))

	a.showModal("help", help, 56, 20)
}
