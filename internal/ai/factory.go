// Package ai selects and wraps the language-model provider.
package ai

import (
	"fmt"

	"github.com/onedaone/reco-ai-demo/internal/ai/mock"
	"github.com/onedaone/reco-ai-demo/internal/ai/openai"
	"github.com/onedaone/reco-ai-demo/internal/config"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

// NewProvider constructs the appropriate AI provider based on config.
// Called once at server startup.
func NewProvider(cfg config.AIConfig) (models.AIProvider, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	case "mock":
		return mock.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of openai, mock", cfg.Provider)
	}
}
