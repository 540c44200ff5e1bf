package api

import (
	"time"

	"github.com/ajramos/echo-tui/internal/prompts"
)

// EnhanceRequest is the body of POST /prompts/enhance/
type EnhanceRequest struct {
	PromptText         string  `json:"prompt_text"`
	TemplateID         string  `json:"template_id,omitempty"`
	Temperature        float64 `json:"temperature"`
	MaxTokens          int     `json:"max_tokens"`
	CustomSystemPrompt string  `json:"custom_system_prompt,omitempty"`
}

// Persona describes who the enhanced prompt asks the model to be
type Persona struct {
	Role        string `json:"role"`
	Expertise   string `json:"expertise"`
	Perspective string `json:"perspective"`
}

// Task describes what the enhanced prompt asks for
type Task struct {
	Objective   string   `json:"objective"`
	Deliverable string   `json:"deliverable"`
	Constraints []string `json:"constraints"`
}

// PromptContext carries the background the enhanced prompt supplies
type PromptContext struct {
	TechnicalBackground string   `json:"technical_background"`
	KeyConsiderations   []string `json:"key_considerations"`
	Audience            string   `json:"audience"`
}

// Format describes the requested output shape
type Format struct {
	OutputStyle string   `json:"output_style"`
	Structure   []string `json:"structure"`
	Tone        string   `json:"tone"`
}

// EnhancedPrompt is the PTCF decomposition plus the consolidated prompt
type EnhancedPrompt struct {
	ID                 int           `json:"id"`
	Persona            Persona       `json:"persona"`
	Task               Task          `json:"task"`
	Context            PromptContext `json:"context"`
	Format             Format        `json:"format"`
	ConsolidatedPrompt string        `json:"consolidated_prompt"`
	ImprovementSummary string        `json:"improvement_summary"`
	ModelUsed          string        `json:"model_used"`
	TokensUsed         *int          `json:"tokens_used"`
}

// EnhanceResult is the response of POST /prompts/enhance/ and GET /prompts/{id}/
type EnhanceResult struct {
	ID           int            `json:"id"`
	OriginalText string         `json:"original_text"`
	Enhanced     EnhancedPrompt `json:"enhanced"`
	CreatedAt    time.Time      `json:"created_at"`
}

// HistoryPage is one page of GET /prompts/history/
type HistoryPage struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []EnhanceResult `json:"results"`
}

// templatePage is the paginated envelope GET /templates/ may wrap its list in
type templatePage struct {
	Results []prompts.Template `json:"results"`
}
