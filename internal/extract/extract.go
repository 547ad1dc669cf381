// Package extract turns the three report input modes (raw text, remote URL,
// uploaded file) into plain text for the prompt. Extraction failures are
// expected (bad URLs, non-UTF8 binaries, corrupt PDFs) and degrade to a
// placeholder string instead of an error, so an analysis is always attempted.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxTextLen caps extracted text at 20,000 characters to bound prompt cost.
const MaxTextLen = 20000

const (
	fetchTimeout  = 10 * time.Second
	userAgent     = "Reco-AI-Demo/1.0"
	maxFetchBytes = 4 << 20
)

// Kind selects the acquisition mode.
type Kind string

const (
	KindText Kind = "text"
	KindURL  Kind = "url"
	KindFile Kind = "file"
)

// Input describes one report source. For KindFile, Path points at a
// temporary file owned by the caller; the caller removes it after the
// request completes.
type Input struct {
	Kind        Kind
	Text        string
	URL         string
	FileName    string
	ContentType string
	Path        string
}

// Extractor acquires plain text from report inputs.
type Extractor struct {
	client *http.Client
}

// New creates an Extractor with a bounded URL fetch timeout.
func New() *Extractor {
	return &Extractor{client: &http.Client{Timeout: fetchTimeout}}
}

// Acquire returns the extracted text for the input. It never fails: any
// internal error yields a diagnostic placeholder so the pipeline still runs.
func (e *Extractor) Acquire(ctx context.Context, in Input) string {
	switch in.Kind {
	case KindURL:
		return e.fetchURL(ctx, in.URL)
	case KindFile:
		return fileText(in)
	default:
		return Truncate(in.Text)
	}
}

func (e *Extractor) fetchURL(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return fmt.Sprintf("Failed to fetch URL: %v", err)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return Truncate(StripHTML(string(body)))
	}
	return Truncate(string(body))
}

func fileText(in Input) string {
	display := in.FileName
	if display == "" {
		display = filepath.Base(in.Path)
	}

	if isPDF(display, in.ContentType) {
		text, err := pdfText(in.Path)
		if err == nil {
			return Truncate(text)
		}
		return fmt.Sprintf("Uploaded file: %s", display)
	}

	data, err := os.ReadFile(in.Path)
	if err != nil {
		return fmt.Sprintf("Uploaded file: %s", display)
	}
	return Truncate(string(data))
}

func isPDF(name, contentType string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf") || contentType == "application/pdf"
}

func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	rd, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rd); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Truncate caps s at MaxTextLen characters without splitting a rune.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxTextLen {
		return s
	}
	return string([]rune(s)[:MaxTextLen])
}
