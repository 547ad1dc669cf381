package extract_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/onedaone/reco-ai-demo/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_TextPassthrough(t *testing.T) {
	e := extract.New()
	got := e.Acquire(context.Background(), extract.Input{Kind: extract.KindText, Text: "Leak in roof, 10m2 damaged"})
	assert.Equal(t, "Leak in roof, 10m2 damaged", got)
}

func TestAcquire_TextTruncatedToCap(t *testing.T) {
	e := extract.New()
	long := strings.Repeat("a", 50000)

	got := e.Acquire(context.Background(), extract.Input{Kind: extract.KindText, Text: long})
	assert.Equal(t, extract.MaxTextLen, utf8.RuneCountInString(got))
}

func TestTruncate_DoesNotSplitRunes(t *testing.T) {
	long := strings.Repeat("æ", 50000)

	got := extract.Truncate(long)
	assert.Equal(t, extract.MaxTextLen, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestAcquire_URLHTMLStripped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Reco-AI-Demo/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><style>body{color:red}</style></head>
			<body><script>alert("x")</script><h1>Damage   report</h1><p>Roof leak</p></body></html>`))
	}))
	defer srv.Close()

	e := extract.New()
	got := e.Acquire(context.Background(), extract.Input{Kind: extract.KindURL, URL: srv.URL})

	assert.Equal(t, "Damage report Roof leak", got)
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color:red")
}

func TestAcquire_URLNonHTMLRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("plain report body"))
	}))
	defer srv.Close()

	e := extract.New()
	got := e.Acquire(context.Background(), extract.Input{Kind: extract.KindURL, URL: srv.URL})
	assert.Equal(t, "plain report body", got)
}

func TestAcquire_URLUnreachableYieldsPlaceholder(t *testing.T) {
	e := extract.New()
	got := e.Acquire(context.Background(), extract.Input{Kind: extract.KindURL, URL: "http://127.0.0.1:1/nope"})
	assert.Contains(t, got, "Failed to fetch URL")
}

func TestAcquire_FilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("water damage in basement"), 0o600))

	e := extract.New()
	got := e.Acquire(context.Background(), extract.Input{
		Kind: extract.KindFile, FileName: "report.txt", Path: path,
	})
	assert.Equal(t, "water damage in basement", got)
}

func TestAcquire_MissingFileYieldsPlaceholder(t *testing.T) {
	e := extract.New()
	got := e.Acquire(context.Background(), extract.Input{
		Kind: extract.KindFile, FileName: "gone.txt", Path: filepath.Join(t.TempDir(), "gone.txt"),
	})
	assert.Equal(t, "Uploaded file: gone.txt", got)
}

func TestAcquire_CorruptPDFYieldsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o600))

	e := extract.New()
	got := e.Acquire(context.Background(), extract.Input{
		Kind: extract.KindFile, FileName: "broken.pdf", ContentType: "application/pdf", Path: path,
	})
	assert.Equal(t, "Uploaded file: broken.pdf", got)
}

func TestStripHTML_CollapsesWhitespace(t *testing.T) {
	got := extract.StripHTML("<div>one\n\n  two</div><span>three</span>")
	assert.Equal(t, "one two three", got)
}
