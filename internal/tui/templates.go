package tui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/ajramos/echo-tui/internal/prompts"
	"github.com/ajramos/echo-tui/internal/render"
)

// initTemplatePanel wires the search field and list together
func (a *App) initTemplatePanel() {
	search, _ := a.views["search"].(*tview.InputField)
	list, _ := a.views["templates"].(*tview.List)
	if search == nil || list == nil {
		return
	}

	search.SetChangedFunc(func(text string) {
		a.mu.Lock()
		a.templateFilter = text
		a.mu.Unlock()
		a.reloadTemplateList(text)
	})
	search.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter, tcell.KeyTab:
			a.SetFocus(list)
		case tcell.KeyEscape:
			search.SetText("")
			a.SetFocus(a.editor)
		}
	})

	list.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.selectTemplateAt(index)
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			a.SetFocus(a.editor)
			return nil
		case tcell.KeyRune:
			if event.Rune() == '/' {
				a.SetFocus(search)
				return nil
			}
		}
		return event
	})
}

// loadTemplates fetches the template list in the background. A load
// failure only logs; the enhance flow works without templates.
func (a *App) loadTemplates() {
	templates, err := a.templateService.ListTemplates(a.ctx, "")
	if err != nil {
		if a.logger != nil {
			a.logger.Printf("template load failed: %v", err)
		}
		a.QueueUpdateDraw(func() {
			a.GetErrorHandler().ShowWarning("Templates unavailable")
		})
		return
	}

	a.mu.Lock()
	a.templates = templates
	filter := a.templateFilter
	a.mu.Unlock()

	a.QueueUpdateDraw(func() {
		a.reloadTemplateList(filter)
	})
}

// reloadTemplateList repopulates the list from the in-memory set
func (a *App) reloadTemplateList(filter string) {
	list, ok := a.views["templates"].(*tview.List)
	if !ok {
		return
	}

	a.mu.RLock()
	filtered := a.templateService.FilterTemplates(a.templates, filter)
	selected := a.selectedTemplate
	a.mu.RUnlock()

	list.Clear()
	list.AddItem("None", "No template, plain enhancement", 0, nil)
	for _, t := range filtered {
		isSelected := selected != nil && selected.ID == t.ID
		list.AddItem(render.FormatTemplateLine(t, isSelected), t.Description, 0, nil)
	}
	if len(filtered) == 0 && filter != "" {
		list.AddItem("No matches", "", 0, nil)
	}
}

// selectTemplateAt applies the template at a list index. Index zero is
// the "None" entry which clears the selection.
func (a *App) selectTemplateAt(index int) {
	a.mu.RLock()
	filtered := a.templateService.FilterTemplates(a.templates, a.templateFilter)
	a.mu.RUnlock()

	if index == 0 {
		a.applyTemplate(nil)
		return
	}
	idx := index - 1
	if idx < 0 || idx >= len(filtered) {
		return
	}
	t := filtered[idx]
	a.applyTemplate(&t)
}

// applyTemplate records the template selection. Selecting a template
// replaces any custom system prompt; the editor text is never touched.
func (a *App) applyTemplate(t *prompts.Template) {
	a.mu.Lock()
	a.selectedTemplate = t
	if t != nil {
		a.systemPrompt = ""
	}
	filter := a.templateFilter
	a.mu.Unlock()

	a.reloadTemplateList(filter)
	if t != nil {
		a.GetErrorHandler().ShowInfo(fmt.Sprintf("Template: %s", t.Name))
	} else {
		a.GetErrorHandler().ShowInfo("Template cleared")
	}
}
