package tui

import (
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// PromptEditor is a minimal multi-line text editor built on TextView.
// tview has no native text area, so editing state lives here and the
// TextView only renders it.
type PromptEditor struct {
	*tview.TextView

	lines     []string
	cursorRow int
	cursorCol int

	onChange func(text string)
}

// NewPromptEditor creates an empty editor
func NewPromptEditor() *PromptEditor {
	e := &PromptEditor{
		TextView: tview.NewTextView(),
		lines:    []string{""},
	}
	e.TextView.SetDynamicColors(true)
	e.TextView.SetWrap(true)
	e.TextView.SetWordWrap(true)
	e.TextView.SetInputCapture(e.handleKey)
	e.render()
	return e
}

// SetChangedFunc registers a callback fired after every edit
func (e *PromptEditor) SetChangedFunc(fn func(text string)) {
	e.onChange = fn
}

// GetText returns the editor contents
func (e *PromptEditor) GetText() string {
	return strings.Join(e.lines, "\n")
}

// SetText replaces the editor contents and moves the cursor to the end
func (e *PromptEditor) SetText(text string) {
	e.lines = strings.Split(text, "\n")
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.cursorRow = len(e.lines) - 1
	e.cursorCol = len([]rune(e.lines[e.cursorRow]))
	e.render()
}

// Clear empties the editor
func (e *PromptEditor) Clear() {
	e.lines = []string{""}
	e.cursorRow = 0
	e.cursorCol = 0
	e.render()
}

// IsEmpty reports whether the editor holds only whitespace
func (e *PromptEditor) IsEmpty() bool {
	return strings.TrimSpace(e.GetText()) == ""
}

func (e *PromptEditor) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyRune:
		e.insertRune(event.Rune())
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.deleteBack()
	case tcell.KeyDelete:
		e.deleteForward()
	case tcell.KeyLeft:
		e.moveLeft()
	case tcell.KeyRight:
		e.moveRight()
	case tcell.KeyUp:
		e.moveUp()
	case tcell.KeyDown:
		e.moveDown()
	case tcell.KeyHome, tcell.KeyCtrlA:
		e.cursorCol = 0
	case tcell.KeyEnd:
		e.cursorCol = len(e.currentLine())
	case tcell.KeyCtrlU:
		e.lines[e.cursorRow] = ""
		e.cursorCol = 0
	default:
		return event
	}
	e.render()
	e.changed()
	return nil
}

func (e *PromptEditor) currentLine() []rune {
	return []rune(e.lines[e.cursorRow])
}

func (e *PromptEditor) insertRune(r rune) {
	line := e.currentLine()
	out := make([]rune, 0, len(line)+1)
	out = append(out, line[:e.cursorCol]...)
	out = append(out, r)
	out = append(out, line[e.cursorCol:]...)
	e.lines[e.cursorRow] = string(out)
	e.cursorCol++
}

func (e *PromptEditor) insertNewline() {
	line := e.currentLine()
	before := string(line[:e.cursorCol])
	after := string(line[e.cursorCol:])

	e.lines[e.cursorRow] = before
	rest := append([]string{after}, e.lines[e.cursorRow+1:]...)
	e.lines = append(e.lines[:e.cursorRow+1], rest...)
	e.cursorRow++
	e.cursorCol = 0
}

func (e *PromptEditor) deleteBack() {
	if e.cursorCol > 0 {
		line := e.currentLine()
		e.lines[e.cursorRow] = string(line[:e.cursorCol-1]) + string(line[e.cursorCol:])
		e.cursorCol--
		return
	}
	if e.cursorRow == 0 {
		return
	}
	// Join with the previous line
	prev := []rune(e.lines[e.cursorRow-1])
	e.cursorCol = len(prev)
	e.lines[e.cursorRow-1] = string(prev) + e.lines[e.cursorRow]
	e.lines = append(e.lines[:e.cursorRow], e.lines[e.cursorRow+1:]...)
	e.cursorRow--
}

func (e *PromptEditor) deleteForward() {
	line := e.currentLine()
	if e.cursorCol < len(line) {
		e.lines[e.cursorRow] = string(line[:e.cursorCol]) + string(line[e.cursorCol+1:])
		return
	}
	if e.cursorRow == len(e.lines)-1 {
		return
	}
	e.lines[e.cursorRow] = string(line) + e.lines[e.cursorRow+1]
	e.lines = append(e.lines[:e.cursorRow+1], e.lines[e.cursorRow+2:]...)
}

func (e *PromptEditor) moveLeft() {
	if e.cursorCol > 0 {
		e.cursorCol--
	} else if e.cursorRow > 0 {
		e.cursorRow--
		e.cursorCol = len(e.currentLine())
	}
}

func (e *PromptEditor) moveRight() {
	if e.cursorCol < len(e.currentLine()) {
		e.cursorCol++
	} else if e.cursorRow < len(e.lines)-1 {
		e.cursorRow++
		e.cursorCol = 0
	}
}

func (e *PromptEditor) moveUp() {
	if e.cursorRow == 0 {
		return
	}
	e.cursorRow--
	if e.cursorCol > len(e.currentLine()) {
		e.cursorCol = len(e.currentLine())
	}
}

func (e *PromptEditor) moveDown() {
	if e.cursorRow == len(e.lines)-1 {
		return
	}
	e.cursorRow++
	if e.cursorCol > len(e.currentLine()) {
		e.cursorCol = len(e.currentLine())
	}
}

// render redraws the buffer with a block cursor at the edit position
func (e *PromptEditor) render() {
	var b strings.Builder
	for i, line := range e.lines {
		if i == e.cursorRow {
			runes := []rune(line)
			b.WriteString(tview.Escape(string(runes[:e.cursorCol])))
			b.WriteString(`[black:white]`)
			if e.cursorCol < len(runes) {
				b.WriteString(tview.Escape(string(runes[e.cursorCol])))
				b.WriteString(`[-:-]`)
				b.WriteString(tview.Escape(string(runes[e.cursorCol+1:])))
			} else {
				b.WriteString(" ")
				b.WriteString(`[-:-]`)
			}
		} else {
			b.WriteString(tview.Escape(line))
		}
		if i < len(e.lines)-1 {
			b.WriteString("\n")
		}
	}
	e.TextView.SetText(b.String())
}

func (e *PromptEditor) changed() {
	if e.onChange != nil {
		e.onChange(e.GetText())
	}
}
