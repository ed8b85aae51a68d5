package voice

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// claudeProvider implements Provider using the Anthropic Claude API.
type claudeProvider struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func newClaudeProvider(apiKey, model string, maxTokens int64) *claudeProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &claudeProvider{
		client:    &client,
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
	}
}

func (c *claudeProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(userPrompt),
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	var out string
	for _, block := range resp.Content {
		if block.Type == "text" {
			out = block.AsText().Text
		}
	}
	return out, nil
}
