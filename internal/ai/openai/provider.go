package openai

import (
	"context"
	"fmt"

	"github.com/onedaone/reco-ai-demo/internal/config"
	"github.com/onedaone/reco-ai-demo/internal/prompt"
	"github.com/onedaone/reco-ai-demo/pkg/models"
	"github.com/sashabaranov/go-openai"
)

// Completion parameters are fixed: a low temperature favors determinism
// over creativity, and the token budget bounds response cost.
const (
	maxTokens   = 1200
	temperature = 0.15
)

// Provider implements models.AIProvider using the OpenAI chat completions API.
type Provider struct {
	client *openai.Client
	model  string
}

func NewProvider(cfg config.OpenAIConfig) *Provider {
	return &Provider{client: openai.NewClient(cfg.APIKey), model: cfg.Model}
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Model() string { return p.model }

// Complete sends one chat completion request. A transport failure is an
// error; a response with no completion content is an empty reply, which the
// decoder handles through its repair path.
func (p *Provider) Complete(ctx context.Context, userPrompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

var _ models.AIProvider = (*Provider)(nil)
