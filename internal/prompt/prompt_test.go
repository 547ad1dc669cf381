package prompt_test

import (
	"testing"

	"github.com/onedaone/reco-ai-demo/internal/prompt"
	"github.com/stretchr/testify/assert"
)

func TestAnalysis_NamesSchemaFields(t *testing.T) {
	p := prompt.Analysis("roof leak", "NOK")

	for _, field := range []string{
		`"summary"`, `"missing_info"`, `"issues"`, `"improvements"`,
		`"items"`, `"desc"`, `"qty"`, `"unit"`, `"suggested_unit_price"`, `"estimated_total"`,
	} {
		assert.Contains(t, p, field)
	}
}

func TestAnalysis_EmbedsTextAndCurrency(t *testing.T) {
	p := prompt.Analysis("roof leak, 10m2", "NOK")
	assert.Contains(t, p, "roof leak, 10m2")
	assert.Contains(t, p, "NOK <number>")
	assert.Contains(t, p, "valid JSON")
}

func TestAnalysis_Deterministic(t *testing.T) {
	assert.Equal(t, prompt.Analysis("x", "NOK"), prompt.Analysis("x", "NOK"))
}

func TestRepair_EmbedsPriorReply(t *testing.T) {
	p := prompt.Repair("here is some JSON-ish text")
	assert.Contains(t, p, "here is some JSON-ish text")
	assert.Contains(t, p, "valid JSON")
}
