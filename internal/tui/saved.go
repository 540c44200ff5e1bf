package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/ajramos/echo-tui/internal/prompts"
)

// showSavedPrompts opens the picker over the local saved prompt store
func (a *App) showSavedPrompts() {
	a.loadSavedPrompts(false)
}

func (a *App) loadSavedPrompts(favoritesOnly bool) {
	go func() {
		saved, err := a.savedService.ListSaved(a.ctx, favoritesOnly)
		a.QueueUpdateDraw(func() {
			if err != nil {
				a.GetErrorHandler().ShowError(fmt.Sprintf("Saved prompts unavailable: %v", err))
				return
			}
			a.openSavedPicker(saved, favoritesOnly)
		})
	}()
}

func (a *App) openSavedPicker(saved []*prompts.SavedPrompt, favoritesOnly bool) {
	list := tview.NewList()
	list.ShowSecondaryText(true)
	list.SetHighlightFullLine(true)
	list.SetBorder(true)
	title := " Saved Prompts "
	if favoritesOnly {
		title = " Saved Prompts (favorites) "
	}
	list.SetTitle(title)
	list.SetTitleAlign(tview.AlignLeft)

	for _, sp := range saved {
		list.AddItem(savedLine(sp), savedDetail(sp), 0, nil)
	}
	if len(saved) == 0 {
		list.AddItem("Nothing saved yet", "Press the save key on a result to keep it", 0, nil)
	}

	list.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(saved) {
			return
		}
		id := saved[index].ID
		a.closeModal("saved")
		go func() {
			sp, err := a.savedService.GetSaved(a.ctx, id)
			a.QueueUpdateDraw(func() {
				if err != nil {
					a.GetErrorHandler().ShowError(fmt.Sprintf("Could not load saved prompt: %v", err))
					return
				}
				a.showSavedPrompt(sp)
			})
		}()
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		index := list.GetCurrentItem()
		switch {
		case event.Key() == tcell.KeyEscape:
			a.closeModal("saved")
			return nil
		case event.Rune() == 'f' && index < len(saved):
			a.toggleSavedFavorite(saved[index].ID, favoritesOnly)
			return nil
		case event.Rune() == 'F':
			a.closeModal("saved")
			a.loadSavedPrompts(!favoritesOnly)
			return nil
		case event.Rune() == 'd' && index < len(saved):
			a.deleteSavedPrompt(saved[index].ID, favoritesOnly)
			return nil
		}
		return event
	})

	a.showModal("saved", list, 80, 20)
}

func (a *App) toggleSavedFavorite(id int, favoritesOnly bool) {
	go func() {
		fav, err := a.savedService.ToggleFavorite(a.ctx, id)
		a.QueueUpdateDraw(func() {
			if err != nil {
				a.GetErrorHandler().ShowError(fmt.Sprintf("Could not update favorite: %v", err))
				return
			}
			if fav {
				a.GetErrorHandler().ShowSuccess("Marked as favorite")
			} else {
				a.GetErrorHandler().ShowInfo("Favorite removed")
			}
			a.closeModal("saved")
			a.loadSavedPrompts(favoritesOnly)
		})
	}()
}

func (a *App) deleteSavedPrompt(id int, favoritesOnly bool) {
	go func() {
		err := a.savedService.DeleteSaved(a.ctx, id)
		a.QueueUpdateDraw(func() {
			if err != nil {
				a.GetErrorHandler().ShowError(fmt.Sprintf("Delete failed: %v", err))
				return
			}
			a.GetErrorHandler().ShowInfo("Saved prompt deleted")
			a.closeModal("saved")
			a.loadSavedPrompts(favoritesOnly)
		})
	}()
}

// showSavedPrompt renders a saved prompt in the result view
func (a *App) showSavedPrompt(sp *prompts.SavedPrompt) {
	tv, ok := a.views["result"].(*tview.TextView)
	if !ok {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", sp.Title)
	if sp.Notes != "" {
		fmt.Fprintf(&b, "%s\n\n", sp.Notes)
	}
	b.WriteString("[ORIGINAL]\n")
	b.WriteString(sp.OriginalText)
	b.WriteString("\n\n[ENHANCED PROMPT]\n")
	b.WriteString(sp.ConsolidatedPrompt)
	if sp.ImprovementSummary != "" {
		b.WriteString("\n\n[IMPROVEMENTS]\n")
		b.WriteString(sp.ImprovementSummary)
	}
	fmt.Fprintf(&b, "\n\n— saved %s", time.Unix(sp.CreatedAt, 0).Local().Format("2006-01-02 15:04"))

	a.mu.Lock()
	a.currentResult = nil
	a.currentSaved = sp
	a.mu.Unlock()

	tv.SetText(tview.Escape(b.String()))
	tv.ScrollToBeginning()
	a.switchToView(viewResult)
}

func savedLine(sp *prompts.SavedPrompt) string {
	marker := "  "
	if sp.IsFavorite {
		marker = "★ "
	}
	return fmt.Sprintf("%s#%d %s", marker, sp.ID, sp.Title)
}

func savedDetail(sp *prompts.SavedPrompt) string {
	parts := []string{}
	if sp.Category != "" {
		parts = append(parts, sp.Category)
	}
	if sp.ModelUsed != "" {
		parts = append(parts, sp.ModelUsed)
	}
	parts = append(parts, time.Unix(sp.CreatedAt, 0).Local().Format("2006-01-02"))
	return strings.Join(parts, " · ")
}
