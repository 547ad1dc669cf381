// Package analysis orchestrates the report analysis pipeline: text
// acquisition, prompt construction, model invocation, resilient decoding,
// numeric normalization, and the optional notification. One Service handles
// many concurrent requests; per-request state never outlives the request.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/onedaone/reco-ai-demo/internal/ai"
	"github.com/onedaone/reco-ai-demo/internal/cache"
	"github.com/onedaone/reco-ai-demo/internal/decode"
	"github.com/onedaone/reco-ai-demo/internal/estimate"
	"github.com/onedaone/reco-ai-demo/internal/extract"
	"github.com/onedaone/reco-ai-demo/internal/mail"
	"github.com/onedaone/reco-ai-demo/internal/prompt"
	"github.com/onedaone/reco-ai-demo/internal/store"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

// Request is one report submission, owned by the pipeline for the duration
// of the call.
type Request struct {
	Input     extract.Input
	SendEmail bool
	Email     string
}

// Response is the final pipeline output. Exactly one of Result and Raw is
// set; Mail is nil when notification was not requested.
type Response struct {
	Result *models.AnalysisResult
	Raw    string
	Mail   *models.MailOutcome
}

// Service sequences the analysis pipeline.
type Service struct {
	extractor *extract.Extractor
	provider  models.AIProvider
	decoder   *decode.Decoder
	mailer    *mail.Dispatcher
	store     store.Store
	cache     cache.Cache
	currency  string
	timeout   time.Duration
}

// NewService creates a Service. Store and cache are best-effort
// collaborators: their failures degrade the request, never fail it.
func NewService(extractor *extract.Extractor, provider models.AIProvider, mailer *mail.Dispatcher,
	st store.Store, ca cache.Cache, currency string, timeout time.Duration) *Service {
	return &Service{
		extractor: extractor,
		provider:  provider,
		decoder:   decode.New(),
		mailer:    mailer,
		store:     st,
		cache:     ca,
		currency:  currency,
		timeout:   timeout,
	}
}

// Analyze runs the full pipeline for one request. The only fatal failure is
// a model transport error (ai.ErrProviderUnavailable or
// ai.ErrInferenceTimeout); everything else degrades into the response.
func (s *Service) Analyze(ctx context.Context, req Request) (*Response, error) {
	text := s.extractor.Acquire(ctx, req.Input)

	outcome, err := s.analyzeText(ctx, text)
	if err != nil {
		return nil, err
	}

	resp := &Response{Result: outcome.Result, Raw: outcome.Raw}
	resp.Mail = s.dispatchMail(ctx, req, outcome)
	s.persist(ctx, req, outcome, resp.Mail)

	return resp, nil
}

// analyzeText returns a decoded (and normalized) result for the text,
// reusing a cached analysis for identical report text when available.
func (s *Service) analyzeText(ctx context.Context, text string) (decode.Outcome, error) {
	key := cache.ResultKey(cache.TextHash(text))
	if s.cache != nil {
		if cached, found, err := s.cache.Get(ctx, key); err == nil && found {
			var res models.AnalysisResult
			if json.Unmarshal(cached, &res) == nil {
				slog.Info("analysis served from cache")
				return decode.Outcome{Result: &res}, nil
			}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.provider.Complete(callCtx, prompt.Analysis(text, s.currency))
	if err != nil {
		return decode.Outcome{}, mapProviderErr(err)
	}

	outcome, err := s.decoder.Decode(callCtx, reply, s.provider.Complete)
	if err != nil {
		return decode.Outcome{}, mapProviderErr(err)
	}

	if outcome.Decoded() {
		estimate.Normalize(outcome.Result, s.currency)
		if s.cache != nil {
			if encoded, err := json.Marshal(outcome.Result); err == nil {
				if err := s.cache.Set(ctx, key, encoded, cache.ResultTTL); err != nil {
					slog.Warn("caching analysis failed", "error", err)
				}
			}
		}
	}

	return outcome, nil
}

func (s *Service) dispatchMail(ctx context.Context, req Request, outcome decode.Outcome) *models.MailOutcome {
	if s.mailer == nil {
		return nil
	}
	return s.mailer.Dispatch(ctx, outcome.Result, attachmentJSON(outcome), req.SendEmail, req.Email)
}

// persist records decoded analyses for the history API. Best-effort only.
func (s *Service) persist(ctx context.Context, req Request, outcome decode.Outcome, mailOut *models.MailOutcome) {
	if s.store == nil || !outcome.Decoded() {
		return
	}

	rec := &models.AnalysisRecord{
		ID:             uuid.New(),
		InputType:      string(req.Input.Kind),
		Source:         sourceLabel(req.Input),
		Summary:        outcome.Result.Summary,
		EstimatedTotal: string(outcome.Result.EstimatedTotal),
		Result:         *outcome.Result,
		MailSent:       mailOut != nil && mailOut.Error == "",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateAnalysis(ctx, rec); err != nil {
		slog.Error("persisting analysis failed", "id", rec.ID, "error", err)
	}
}

func sourceLabel(in extract.Input) string {
	switch in.Kind {
	case extract.KindURL:
		return in.URL
	case extract.KindFile:
		return in.FileName
	default:
		return ""
	}
}

// attachmentJSON is the pretty-printed result attached to notification mail.
func attachmentJSON(outcome decode.Outcome) []byte {
	var v any = outcome.Result
	if !outcome.Decoded() {
		v = map[string]string{"raw": outcome.Raw}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return []byte("{}")
	}
	return b
}

func mapProviderErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ai.ErrInferenceTimeout, err)
	}
	return fmt.Errorf("%w: %v", ai.ErrProviderUnavailable, err)
}
