package tui

import (
	"strings"
	"unicode"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// bindKeys installs the global key dispatcher. Plain-letter shortcuts
// stay inert while a text widget has focus so typing never triggers them.
func (a *App) bindKeys() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		k := a.Keys

		if matchesKey(event, k.Quit) && !a.typingFocused() {
			a.Stop()
			return nil
		}
		if matchesKey(event, k.Submit) {
			if a.CurrentView() == viewInput {
				a.submitEnhance()
				return nil
			}
		}
		if matchesKey(event, k.Help) && !a.typingFocused() {
			a.showHelp()
			return nil
		}

		switch a.CurrentView() {
		case viewInput:
			if a.typingFocused() {
				return event
			}
			switch {
			case matchesKey(event, k.Templates):
				a.SetFocus(a.views["templates"])
				return nil
			case matchesKey(event, k.Advanced):
				a.showAdvancedForm()
				return nil
			case matchesKey(event, k.History):
				a.showHistory()
				return nil
			case matchesKey(event, k.SavedPrompts):
				a.showSavedPrompts()
				return nil
			}
		case viewResult:
			switch {
			case matchesKey(event, k.NewPrompt):
				a.newPrompt()
				return nil
			case matchesKey(event, k.SavePrompt):
				a.showSaveForm()
				return nil
			case matchesKey(event, k.SavedPrompts):
				a.showSavedPrompts()
				return nil
			case matchesKey(event, k.History):
				a.showHistory()
				return nil
			case event.Key() == tcell.KeyEscape:
				a.newPrompt()
				return nil
			}
		}
		return event
	})
}

// typingFocused reports whether the focused primitive consumes runes
func (a *App) typingFocused() bool {
	switch a.GetFocus().(type) {
	case *PromptEditor, *tview.InputField, *tview.Form:
		return true
	}
	// Form items report their own type
	if _, ok := a.GetFocus().(tview.FormItem); ok {
		return true
	}
	return false
}

// matchesKey compares a key event against a binding like "q" or "ctrl+e".
// Single-letter bindings are case-sensitive so "s" and "S" stay distinct.
func matchesKey(event *tcell.EventKey, binding string) bool {
	binding = strings.TrimSpace(binding)
	if binding == "" {
		return false
	}

	if rest, ok := strings.CutPrefix(strings.ToLower(binding), "ctrl+"); ok {
		if len(rest) != 1 || rest[0] < 'a' || rest[0] > 'z' {
			return false
		}
		// Ctrl-letter events arrive as the corresponding control key
		want := tcell.Key(rest[0] - 'a' + 1)
		if event.Key() == want {
			return true
		}
		return event.Modifiers()&tcell.ModCtrl != 0 &&
			unicode.ToLower(event.Rune()) == rune(rest[0])
	}

	switch strings.ToLower(binding) {
	case "esc", "escape":
		return event.Key() == tcell.KeyEscape
	case "enter":
		return event.Key() == tcell.KeyEnter
	case "tab":
		return event.Key() == tcell.KeyTab
	}

	if event.Key() != tcell.KeyRune {
		return false
	}
	runes := []rune(binding)
	if len(runes) != 1 {
		return false
	}
	return event.Rune() == runes[0]
}
