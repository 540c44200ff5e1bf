package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajramos/echo-tui/internal/api"
	"github.com/ajramos/echo-tui/internal/prompts"
)

func fullResult() *api.EnhanceResult {
	tokens := 512
	return &api.EnhanceResult{
		ID:           42,
		OriginalText: "write code",
		Enhanced: api.EnhancedPrompt{
			Persona: api.Persona{Role: "Senior engineer", Expertise: "Go", Perspective: "pragmatic"},
			Task: api.Task{
				Objective:   "Produce an HTTP handler",
				Deliverable: "A reviewed patch",
				Constraints: []string{"idiomatic Go", "no new deps"},
			},
			Context: api.PromptContext{
				TechnicalBackground: "Existing chi router",
				KeyConsiderations:   []string{"backwards compatibility"},
				Audience:            "backend team",
			},
			Format: api.Format{
				OutputStyle: "markdown",
				Structure:   []string{"summary", "code"},
				Tone:        "direct",
			},
			ConsolidatedPrompt: "You are a senior Go engineer...",
			ImprovementSummary: "Added persona and constraints",
			ModelUsed:          "gemini-2.5-flash",
			TokensUsed:         &tokens,
		},
	}
}

func TestFormatEnhancedResult_Sections(t *testing.T) {
	text := FormatEnhancedResult(fullResult(), FormatOptions{})

	for _, section := range []string{"[PERSONA]", "[TASK]", "[CONTEXT]", "[FORMAT]", "[ENHANCED PROMPT]", "[IMPROVEMENTS]"} {
		assert.Contains(t, text, section)
	}
	assert.Contains(t, text, "Role: Senior engineer")
	assert.Contains(t, text, "  • idiomatic Go")
	assert.Contains(t, text, "You are a senior Go engineer...")
	assert.Contains(t, text, "gemini-2.5-flash | 512 tokens")
}

func TestFormatEnhancedResult_ConsolidatedPromptVerbatim(t *testing.T) {
	result := fullResult()
	result.Enhanced.ConsolidatedPrompt = "exact\nprompt\ntext"

	text := FormatEnhancedResult(result, FormatOptions{})

	assert.Contains(t, text, "[ENHANCED PROMPT]\nexact\nprompt\ntext\n")
}

func TestFormatEnhancedResult_EmptyFieldsOmitted(t *testing.T) {
	result := &api.EnhanceResult{
		Enhanced: api.EnhancedPrompt{ConsolidatedPrompt: "p"},
	}

	text := FormatEnhancedResult(result, FormatOptions{})

	assert.NotContains(t, text, "Role:")
	assert.NotContains(t, text, "Constraints:")
	assert.NotContains(t, text, "[IMPROVEMENTS]")
	assert.Contains(t, text, "[ENHANCED PROMPT]\np\n")
}

func TestFormatEnhancedResult_Nil(t *testing.T) {
	assert.Empty(t, FormatEnhancedResult(nil, FormatOptions{}))
}

func TestFormatTemplateLine(t *testing.T) {
	tmpl := prompts.Template{Name: "Code Generation", Category: "code"}

	assert.Equal(t, "  Code Generation (code)", FormatTemplateLine(tmpl, false))
	assert.Equal(t, "● Code Generation (code)", FormatTemplateLine(tmpl, true))

	tmpl.Category = ""
	assert.Equal(t, "  Code Generation", FormatTemplateLine(tmpl, false))
}

func TestWrapText_PreservesShortLinesAndBlanks(t *testing.T) {
	input := "short line\n\nanother"

	assert.Equal(t, input, WrapText(input, 40))
}

func TestWrapText_WrapsLongLines(t *testing.T) {
	input := "one two three four five six seven eight"

	wrapped := WrapText(input, 13)

	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, displayLen(line), 13)
	}
	assert.Equal(t, "one two three four five six seven eight",
		strings.ReplaceAll(wrapped, "\n", " "))
}

func TestWrapText_PreservesCodeFences(t *testing.T) {
	input := "```\nfunc main() { fmt.Println(\"a very long line that must not be wrapped at all\") }\n```"

	assert.Equal(t, input, WrapText(input, 20))
}

func TestWrapText_LongTokenKeptWhole(t *testing.T) {
	input := "see https://example.com/a/very/long/url/that/exceeds/width ok"

	wrapped := WrapText(input, 10)

	assert.Contains(t, wrapped, "https://example.com/a/very/long/url/that/exceeds/width")
}

func TestWrapText_ZeroWidthNoop(t *testing.T) {
	input := strings.Repeat("x ", 100)

	assert.Equal(t, input, WrapText(input, 0))
}

func TestWrapText_NormalizesCRLF(t *testing.T) {
	assert.Equal(t, "a\nb", WrapText("a\r\nb", 40))
}
