package voice

import "context"

// Provider abstracts the AI API (Claude, Gemini, etc.).
type Provider interface {
	// Generate returns one completion for the given prompts.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
