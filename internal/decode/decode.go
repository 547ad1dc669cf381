// Package decode turns raw model replies into structured analysis results.
// Model output is not schema-guaranteed, so decoding is layered: a strict
// parse, then a salvage parse, then a single repair round-trip, and finally
// a raw-text fallback. Past the repair attempt nothing here fails the request.
package decode

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/onedaone/reco-ai-demo/internal/prompt"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

// Outcome is the tagged result of decoding: either a structured
// AnalysisResult or the raw reply text when decoding failed for good.
type Outcome struct {
	Result *models.AnalysisResult
	Raw    string
}

// Decoded reports whether the outcome carries a structured result.
func (o Outcome) Decoded() bool { return o.Result != nil }

// RetryFn issues the repair round-trip: it sends the repair prompt to the
// model and returns the new reply.
type RetryFn func(ctx context.Context, repairPrompt string) (string, error)

// Decoder decodes model replies. Safe for concurrent use.
type Decoder struct {
	schema *resultSchema
}

func New() *Decoder {
	return &Decoder{schema: compileResultSchema()}
}

// Decode attempts a strict parse, then a salvage parse, then exactly one
// repair round-trip via retry. The retry loop is bounded so worst-case
// latency stays predictable. A transport error from retry is returned as-is;
// a reply that still will not parse degrades to Outcome{Raw: …}.
func (d *Decoder) Decode(ctx context.Context, reply string, retry RetryFn) (Outcome, error) {
	if res, ok := d.parse(reply); ok {
		return Outcome{Result: res}, nil
	}

	slog.Info("model reply was not valid JSON, issuing repair round-trip", "reply_len", len(reply))
	repaired, err := retry(ctx, prompt.Repair(reply))
	if err != nil {
		return Outcome{}, err
	}

	if res, ok := d.parse(repaired); ok {
		return Outcome{Result: res}, nil
	}
	slog.Warn("repair round-trip did not yield valid JSON, falling back to raw text")
	return Outcome{Raw: repaired}, nil
}

// parse tries a strict object parse, then salvages the substring between the
// first '{' and the last '}' — the model sometimes wraps JSON in prose
// despite instructions.
func (d *Decoder) parse(reply string) (*models.AnalysisResult, bool) {
	if res, ok := d.unmarshalObject(reply); ok {
		return res, true
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start >= 0 && end > start {
		if res, ok := d.unmarshalObject(reply[start : end+1]); ok {
			return res, true
		}
	}
	return nil, false
}

func (d *Decoder) unmarshalObject(s string) (*models.AnalysisResult, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var res models.AnalysisResult
	if err := json.Unmarshal([]byte(trimmed), &res); err != nil {
		return nil, false
	}
	d.schema.check(trimmed)
	return &res, true
}
