// Package extractor pulls structured facts out of a raw model summary.
package extractor

import (
	"strings"

	"github.com/MikeSquared-Agency/scribe/internal/prompt"
)

// Strategy parses a raw summary into key points and action items. A nil
// slice means the corresponding facts are absent, which downstream flagging
// distinguishes from an empty list. Implementations are best-effort and
// never fail.
//
// Marker scanning is inherently fragile (it depends on the model echoing
// the exact headers), so it sits behind this interface: a
// structured-output-capable model integration can replace it without
// touching the rest of the pipeline.
type Strategy interface {
	Extract(raw string) (keyPoints, actionItems []string)
}

// Marker is the default Strategy. It locates the two bracketed section
// headers from the prompt template and collects the bulleted lines under
// each.
type Marker struct{}

func (Marker) Extract(raw string) ([]string, []string) {
	return section(raw, prompt.SectionKeyPoints), section(raw, prompt.SectionActionItems)
}

// section returns the bullet items between header and the next bracketed
// header (or end of text). A missing header, or a present header with no
// qualifying lines, both yield nil.
func section(text, header string) []string {
	start := strings.Index(text, header)
	if start < 0 {
		return nil
	}

	body := text[start+len(header):]
	if end := strings.Index(body, "【"); end >= 0 {
		body = body[:end]
	}

	var items []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		var item string
		switch {
		case strings.HasPrefix(line, "•"):
			item = strings.TrimPrefix(line, "•")
		case strings.HasPrefix(line, "-"):
			item = strings.TrimPrefix(line, "-")
		default:
			continue
		}
		items = append(items, strings.TrimSpace(item))
	}
	return items
}
