package models

import "context"

// AIProvider is the core interface that all model integrations implement.
// Never call a specific provider directly — always inject this interface.
type AIProvider interface {
	// Complete sends one prompt to the model and returns the raw completion
	// text. An empty string with a nil error means the service answered but
	// supplied no content; that case goes through the decoder's repair
	// path, a transport error does not.
	Complete(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier (e.g., "openai", "mock").
	Name() string
	// Model returns the configured model identifier.
	Model() string
}
