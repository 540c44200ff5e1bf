package tui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// initComponents builds the primitives once; pages only rearrange them
func (a *App) initComponents() {
	a.editor = NewPromptEditor()
	a.editor.SetBorder(a.Config.Layout.ShowBorders)
	if a.Config.Layout.ShowTitles {
		a.editor.SetTitle(" Prompt ")
		a.editor.SetTitleAlign(tview.AlignLeft)
	}

	search := tview.NewInputField()
	search.SetLabel("🔍 ")
	search.SetPlaceholder("Search templates...")
	a.views["search"] = search

	list := tview.NewList()
	list.ShowSecondaryText(true)
	list.SetHighlightFullLine(true)
	list.SetWrapAround(true)
	list.SetBorder(a.Config.Layout.ShowBorders)
	if a.Config.Layout.ShowTitles {
		list.SetTitle(" Templates ")
		list.SetTitleAlign(tview.AlignLeft)
	}
	a.views["templates"] = list

	result := tview.NewTextView()
	result.SetDynamicColors(true)
	result.SetScrollable(true)
	result.SetWrap(true)
	result.SetWordWrap(true)
	result.SetBorder(a.Config.Layout.ShowBorders)
	if a.Config.Layout.ShowTitles {
		result.SetTitle(" Enhanced Prompt ")
		result.SetTitleAlign(tview.AlignLeft)
	}
	a.views["result"] = result

	status := tview.NewTextView()
	status.SetDynamicColors(true)
	status.SetTextAlign(tview.AlignLeft)
	a.views["status"] = status

	a.errorHandler = NewErrorHandler(a, status, a.logger)
	status.SetText(a.statusHint())
}

// initLayout assembles the pages and hangs the status bar under them
func (a *App) initLayout() {
	templatesPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.views["search"], 1, 0, false).
		AddItem(a.views["templates"], 0, 1, false)

	inputPage := tview.NewFlex().
		AddItem(a.editor, 0, 2, true).
		AddItem(templatesPanel, 0, 1, false)

	a.Pages.AddPage(viewInput, inputPage, true, true)
	a.Pages.AddPage(viewResult, a.views["result"], true, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.Pages, 0, 1, true).
		AddItem(a.views["status"], 1, 0, false)
	a.views["root"] = root
}

// switchToView flips between the input and result pages
func (a *App) switchToView(name string) {
	a.mu.Lock()
	a.currentView = name
	a.mu.Unlock()

	a.Pages.SwitchToPage(name)
	switch name {
	case viewInput:
		a.SetFocus(a.editor)
	case viewResult:
		a.SetFocus(a.views["result"])
	}
	if tv, ok := a.views["status"].(*tview.TextView); ok {
		tv.SetText(a.statusHint())
	}
}

// statusHint renders the context-sensitive key legend. A saved prompt on
// the result page is already stored, so its legend carries no save action.
func (a *App) statusHint() string {
	k := a.Keys
	a.mu.RLock()
	view := a.currentView
	viewingSaved := a.currentSaved != nil
	a.mu.RUnlock()

	if view == viewResult {
		if viewingSaved {
			return fmt.Sprintf("[gray]%s:new prompt  %s:saved prompts  %s:help  %s:quit[-]",
				k.NewPrompt, k.SavedPrompts, k.Help, k.Quit)
		}
		return fmt.Sprintf("[gray]%s:new prompt  %s:save  %s:help  %s:quit[-]",
			k.NewPrompt, k.SavePrompt, k.Help, k.Quit)
	}
	return fmt.Sprintf("[gray]%s:enhance  %s:templates  %s:advanced  %s:history  %s:help[-]",
		k.Submit, k.Templates, k.Advanced, k.History, k.Help)
}

// showModal centers a primitive above the current page
func (a *App) showModal(name string, p tview.Primitive, width, height int) {
	grid := tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
	a.Pages.AddPage(name, grid, true, true)
	a.SetFocus(p)
}

// closeModal removes a modal page and restores focus
func (a *App) closeModal(name string) {
	a.Pages.RemovePage(name)
	a.switchToView(a.CurrentView())
}

// modalEscape wires Esc to close a modal page
func (a *App) modalEscape(name string) func(event *tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.closeModal(name)
			return nil
		}
		return event
	}
}
