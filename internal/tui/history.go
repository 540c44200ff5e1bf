package tui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/ajramos/echo-tui/internal/api"
)

// historyTitleWidth bounds the original text shown per history row
const historyTitleWidth = 60

// showHistory fetches the first page of past enhancements and opens the picker
func (a *App) showHistory() {
	a.GetErrorHandler().ShowProgress("Loading history...")

	go func() {
		page, err := a.enhanceService.History(a.ctx, 1)
		a.QueueUpdateDraw(func() {
			a.GetErrorHandler().ClearProgress()
			if err != nil {
				a.GetErrorHandler().ShowError(fmt.Sprintf("History unavailable: %v", err))
				return
			}
			a.openHistoryPicker(page, 1)
		})
	}()
}

func (a *App) openHistoryPicker(page *api.HistoryPage, pageNum int) {
	list := tview.NewList()
	list.ShowSecondaryText(true)
	list.SetHighlightFullLine(true)
	list.SetBorder(true)
	list.SetTitle(fmt.Sprintf(" History (%d total, page %d) ", page.Count, pageNum))
	list.SetTitleAlign(tview.AlignLeft)

	results := page.Results
	for _, r := range results {
		list.AddItem(historyLine(r), r.CreatedAt.Local().Format("2006-01-02 15:04"), 0, nil)
	}
	if len(results) == 0 {
		list.AddItem("No past enhancements", "", 0, nil)
	}

	list.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(results) {
			return
		}
		r := results[index]
		a.closeModal("history")
		a.mu.Lock()
		a.currentResult = &r
		a.mu.Unlock()
		a.showResult(&r)
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape:
			a.closeModal("history")
			return nil
		case event.Rune() == 'n' && page.Next != nil:
			a.closeModal("history")
			a.loadHistoryPage(pageNum + 1)
			return nil
		case event.Rune() == 'p' && pageNum > 1:
			a.closeModal("history")
			a.loadHistoryPage(pageNum - 1)
			return nil
		}
		return event
	})

	a.showModal("history", list, 80, 20)
}

func (a *App) loadHistoryPage(pageNum int) {
	a.GetErrorHandler().ShowProgress("Loading history...")
	go func() {
		page, err := a.enhanceService.History(a.ctx, pageNum)
		a.QueueUpdateDraw(func() {
			a.GetErrorHandler().ClearProgress()
			if err != nil {
				a.GetErrorHandler().ShowError(fmt.Sprintf("History unavailable: %v", err))
				return
			}
			a.openHistoryPicker(page, pageNum)
		})
	}()
}

// historyLine is the one-line summary for a past enhancement
func historyLine(r api.EnhanceResult) string {
	text := r.OriginalText
	runes := []rune(text)
	if len(runes) > historyTitleWidth {
		text = string(runes[:historyTitleWidth-3]) + "..."
	}
	return fmt.Sprintf("#%d %s", r.ID, text)
}
