package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/onedaone/reco-ai-demo/internal/ai"
	"github.com/onedaone/reco-ai-demo/internal/analysis"
	"github.com/onedaone/reco-ai-demo/internal/api/response"
	"github.com/onedaone/reco-ai-demo/internal/extract"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

const maxUploadBytes = 16 << 20

// Analyzer defines the interface the handler depends on.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Response, error)
}

// The mail key is always present; a nil outcome serializes as null so
// clients can distinguish "not requested" from "missing field".
type analyzeResponse struct {
	*models.AnalysisResult
	Mail *models.MailOutcome `json:"mail"`
}

type rawResponse struct {
	Raw  string              `json:"raw"`
	Mail *models.MailOutcome `json:"mail"`
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/v1/analyze.
// The request is multipart/form-data with inputType, text, url, file,
// sendEmail, and email fields.
func NewAnalyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		req := analysis.Request{
			SendEmail: truthy(r.FormValue("sendEmail")),
			Email:     r.FormValue("email"),
		}

		switch kind := inputKind(r); kind {
		case extract.KindText:
			text := r.FormValue("text")
			if text == "" {
				response.Error(w, http.StatusBadRequest, "text is required")
				return
			}
			req.Input = extract.Input{Kind: kind, Text: text}

		case extract.KindURL:
			url := r.FormValue("url")
			if url == "" {
				response.Error(w, http.StatusBadRequest, "url is required")
				return
			}
			req.Input = extract.Input{Kind: kind, URL: url}

		case extract.KindFile:
			in, cleanup, err := saveUpload(r)
			if err != nil {
				response.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			defer cleanup()
			req.Input = in

		default:
			response.Error(w, http.StatusBadRequest,
				"inputType must be one of text, url, file")
			return
		}

		result, err := svc.Analyze(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, ai.ErrInferenceTimeout):
				response.Error(w, http.StatusGatewayTimeout,
					"Analysis took too long and was cancelled")
			case errors.Is(err, ai.ErrProviderUnavailable):
				response.Error(w, http.StatusBadGateway,
					"The AI provider is not available")
			default:
				response.Error(w, http.StatusInternalServerError,
					"An unexpected error occurred")
			}
			return
		}

		if result.Result == nil {
			response.JSON(w, http.StatusOK, rawResponse{Raw: result.Raw, Mail: result.Mail})
			return
		}
		response.JSON(w, http.StatusOK, analyzeResponse{AnalysisResult: result.Result, Mail: result.Mail})
	}
}

// inputKind returns the requested input mode. When inputType is omitted the
// mode defaults by which part is present: text, then url, then file.
func inputKind(r *http.Request) extract.Kind {
	if v := r.FormValue("inputType"); v != "" {
		return extract.Kind(v)
	}
	if r.FormValue("text") != "" {
		return extract.KindText
	}
	if r.FormValue("url") != "" {
		return extract.KindURL
	}
	return extract.KindFile
}

// saveUpload spools the uploaded file to a temp file. The returned cleanup
// removes it and must run after the analysis completes.
func saveUpload(r *http.Request) (extract.Input, func(), error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return extract.Input{}, nil, errors.New("file is required")
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "reco-upload-*")
	if err != nil {
		return extract.Input{}, nil, errors.New("could not store upload")
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		cleanup()
		return extract.Input{}, nil, errors.New("could not store upload")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return extract.Input{}, nil, errors.New("could not store upload")
	}

	return extract.Input{
		Kind:        extract.KindFile,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Path:        tmp.Name(),
	}, cleanup, nil
}

func truthy(v string) bool {
	switch v {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
