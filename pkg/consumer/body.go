package consumer

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const maxSnippetLen = 512

// describeBody turns an error response body into a short human-readable reason.
// HTML error pages yield their title, JSON bodies their message field.
func describeBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "<empty>"
	}
	if trimmed[0] == '<' {
		if title := htmlTitle(trimmed); title != "" {
			return title
		}
	}
	if trimmed[0] == '{' {
		if msg := jsonMessage(trimmed); msg != "" {
			return msg
		}
	}
	return responseSnippet(trimmed)
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	for _, sel := range []string{"title", "h1"} {
		if text := strings.Join(strings.Fields(doc.Find(sel).First().Text()), " "); text != "" {
			return text
		}
	}
	return ""
}

// jsonMessage looks for the message keys used by the upstream services.
func jsonMessage(body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"message", "mensaje", "msg", "error"} {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxSnippetLen {
		return s
	}
	// Cut on a rune boundary.
	n := maxSnippetLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
