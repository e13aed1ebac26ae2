// Package ai adapts external text-completion APIs to the TextCompleter port.
package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
)

const systemPrompt = "あなたは会計処理の専門家です。"

// OpenAICompleter calls the OpenAI chat completion API with the tenant's own
// key and model. Clients are built per call because keys differ per tenant.
type OpenAICompleter struct {
	// newClient is swappable for tests.
	newClient func(apiKey string) openaiClient
}

type openaiClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAICompleter creates a completer backed by the OpenAI API.
func NewOpenAICompleter() *OpenAICompleter {
	return &OpenAICompleter{
		newClient: func(apiKey string) openaiClient {
			return openai.NewClient(apiKey)
		},
	}
}

var _ portssvc.TextCompleter = (*OpenAICompleter)(nil)

// Complete sends one prompt to the tenant's configured model.
func (c *OpenAICompleter) Complete(ctx context.Context, settings domain.AISettings, prompt string) (string, error) {
	if settings.OpenAIAPIKey == "" {
		return "", fmt.Errorf("tenant has no OpenAI API key configured")
	}
	model := settings.AIModel
	if model == "" {
		model = openai.GPT4oMini
	}

	resp, err := c.newClient(settings.OpenAIAPIKey).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
