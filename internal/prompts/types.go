package prompts

// Template represents a prompt template served by the Echo backend
type Template struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	SystemPromptPrefix string `json:"system_prompt_prefix"`
}

// SavedPrompt represents a locally saved enhancement result
type SavedPrompt struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	Notes              string `json:"notes"`
	Category           string `json:"category"`
	OriginalText       string `json:"original_text"`
	ConsolidatedPrompt string `json:"consolidated_prompt"`
	ImprovementSummary string `json:"improvement_summary"`
	ModelUsed          string `json:"model_used"`
	IsFavorite         bool   `json:"is_favorite"`
	CreatedAt          int64  `json:"created_at"`
	LastAccessed       int64  `json:"last_accessed"`
}

// TemplateFrontMatter is the YAML header of a local template file
type TemplateFrontMatter struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}
