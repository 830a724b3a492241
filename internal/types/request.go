package types

import (
	"strings"
	"unicode/utf8"
)

// PromptRequirement is the message returned to callers whose prompt fails validation.
const PromptRequirement = "Prompt must be a string (max 1000 characters)"

// GenerationRequest carries one validated user prompt. Build it with NewGenerationRequest.
type GenerationRequest struct {
	prompt string
}

// NewGenerationRequest validates the prompt and fails with an InvalidRequest error
// when it is blank or longer than MaxPromptLength characters.
func NewGenerationRequest(prompt string) (GenerationRequest, error) {
	if strings.TrimSpace(prompt) == "" || utf8.RuneCountInString(prompt) > MaxPromptLength {
		return GenerationRequest{}, NewError(KindInvalidRequest, PromptRequirement, nil)
	}
	return GenerationRequest{prompt: prompt}, nil
}

// Prompt returns the user's prompt text.
func (r GenerationRequest) Prompt() string { return r.prompt }
