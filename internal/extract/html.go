package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes script and style blocks, drops all remaining tags, and
// collapses whitespace. Good enough for feeding page text to the model; it
// is not a sanitizer.
func StripHTML(src string) string {
	tok := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	skip := 0

	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if name, _ := tok.TagName(); isSkipped(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := tok.TagName(); isSkipped(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(tok.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isSkipped(tag string) bool {
	return tag == "script" || tag == "style"
}
