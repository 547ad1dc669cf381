// Package mock provides an in-process AI provider for local development and tests.
package mock

import (
	"context"

	"github.com/onedaone/reco-ai-demo/pkg/models"
)

// Provider satisfies models.AIProvider for testing.
type Provider struct {
	Name_        string
	Model_       string
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
	Calls        int
}

func (p *Provider) Name() string { return p.Name_ }

func (p *Provider) Model() string { return p.Model_ }

func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	p.Calls++
	if p.CompleteFunc != nil {
		return p.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

// NewProvider returns a Provider with a sensible default completion: a
// minimal valid analysis so the full pipeline can run without a model service.
func NewProvider() *Provider {
	return &Provider{
		Name_:  "mock",
		Model_: "mock-v1",
		CompleteFunc: func(_ context.Context, _ string) (string, error) {
			return `{"summary":"Mock analysis of the submitted report.",` +
				`"missing_info":["report date"],"issues":[],` +
				`"improvements":"Add measurements for each damaged area.",` +
				`"items":[{"desc":"Inspection","qty":1,"unit":"pcs","suggested_unit_price":1500}]}`, nil
		},
	}
}

// NewFailingProvider returns a Provider that always returns the given error.
func NewFailingProvider(err error) *Provider {
	return &Provider{
		Name_:  "mock",
		Model_: "mock-v1",
		CompleteFunc: func(_ context.Context, _ string) (string, error) {
			return "", err
		},
	}
}

var _ models.AIProvider = (*Provider)(nil)
