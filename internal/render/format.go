package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/prompts"
)

// FormatOptions controls terminal formatting behavior
type FormatOptions struct {
	WrapWidth int
}

// FormatEnhancedResult builds terminal-friendly text for an enhancement result
// with [PERSONA], [TASK], [CONTEXT], [FORMAT], [ENHANCED PROMPT] and
// [IMPROVEMENTS] sections
func FormatEnhancedResult(result *api.EnhanceResult, opts FormatOptions) string {
	if result == nil {
		return ""
	}
	e := result.Enhanced

	out := &strings.Builder{}

	out.WriteString("[PERSONA]\n")
	writeField(out, "Role", e.Persona.Role)
	writeField(out, "Expertise", e.Persona.Expertise)
	writeField(out, "Perspective", e.Persona.Perspective)
	out.WriteString("\n")

	out.WriteString("[TASK]\n")
	writeField(out, "Objective", e.Task.Objective)
	writeField(out, "Deliverable", e.Task.Deliverable)
	writeList(out, "Constraints", e.Task.Constraints)
	out.WriteString("\n")

	out.WriteString("[CONTEXT]\n")
	writeField(out, "Background", e.Context.TechnicalBackground)
	writeList(out, "Considerations", e.Context.KeyConsiderations)
	writeField(out, "Audience", e.Context.Audience)
	out.WriteString("\n")

	out.WriteString("[FORMAT]\n")
	writeField(out, "Style", e.Format.OutputStyle)
	writeList(out, "Structure", e.Format.Structure)
	writeField(out, "Tone", e.Format.Tone)
	out.WriteString("\n")

	out.WriteString("[ENHANCED PROMPT]\n")
	out.WriteString(e.ConsolidatedPrompt)
	out.WriteString("\n\n")

	if strings.TrimSpace(e.ImprovementSummary) != "" {
		out.WriteString("[IMPROVEMENTS]\n")
		out.WriteString(e.ImprovementSummary)
		out.WriteString("\n\n")
	}

	footer := e.ModelUsed
	if e.TokensUsed != nil {
		footer = fmt.Sprintf("%s | %d tokens", footer, *e.TokensUsed)
	}
	if strings.TrimSpace(footer) != "" {
		out.WriteString("— " + footer + "\n")
	}

	text := out.String()
	if opts.WrapWidth > 0 {
		text = WrapText(text, opts.WrapWidth)
	}
	return text
}

// FormatTemplateLine renders one template picker row
func FormatTemplateLine(t prompts.Template, selected bool) string {
	marker := " "
	if selected {
		marker = "●"
	}
	if t.Category != "" {
		return fmt.Sprintf("%s %s (%s)", marker, t.Name, t.Category)
	}
	return fmt.Sprintf("%s %s", marker, t.Name)
}

func writeField(out *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", label, value)
}

func writeList(out *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(out, "  • %s\n", item)
	}
}

// WrapText wraps text at the given display width, preserving existing line
// breaks, blank lines and fenced code blocks
func WrapText(input string, width int) string {
	if width <= 0 {
		return input
	}

	lines := strings.Split(normalizeNewlines(input), "\n")
	out := &strings.Builder{}
	inCode := false

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCode = !inCode
			out.WriteString(line)
			if i < len(lines)-1 {
				out.WriteByte('\n')
			}
			continue
		}
		if inCode || displayLen(line) <= width {
			out.WriteString(line)
			if i < len(lines)-1 {
				out.WriteByte('\n')
			}
			continue
		}

		out.WriteString(wrapLine(line, width))
		if i < len(lines)-1 {
			out.WriteByte('\n')
		}
	}

	return out.String()
}

// wrapLine soft-wraps a single long line at word boundaries; a token longer
// than the width is emitted on its own line rather than broken
func wrapLine(line string, width int) string {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return line
	}

	out := &strings.Builder{}
	cur := ""
	for _, tok := range tokens {
		switch {
		case cur == "":
			cur = tok
		case displayLen(cur)+1+displayLen(tok) <= width:
			cur += " " + tok
		default:
			out.WriteString(cur)
			out.WriteByte('\n')
			cur = tok
		}
	}
	out.WriteString(cur)
	return out.String()
}

func displayLen(s string) int {
	return runewidth.StringWidth(s)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
