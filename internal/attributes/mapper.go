// Package attributes projects a summary record onto the fixed attribute
// schema of the downstream contact system.
package attributes

import (
	"encoding/json"
	"fmt"

	"github.com/MikeSquared-Agency/scribe/internal/summarizer"
)

// MaxAttributeLength is the downstream field-size limit, in characters.
const MaxAttributeLength = 32000

// Set is the fixed-key attribute mapping pushed to the contact system.
// Purely derived from a Record; rebuilt fresh on every invocation.
type Set map[string]string

// Map builds the attribute set for one summary. KeyPoints, CustomerSentiment
// and ActionRequired are emitted only when the underlying facts exist.
func Map(rec *summarizer.Record, storageKey string) Set {
	attrs := Set{
		"CallSummary":      Truncate(rec.Summary, MaxAttributeLength),
		"SummaryCreatedAt": rec.CreatedAt,
		"SummaryS3Key":     storageKey,
		"CallDuration":     FormatDuration(rec.Metadata.Duration),
		"ProcessingTime":   fmt.Sprintf("%dms", rec.Metadata.ProcessingTime),
	}

	if len(rec.KeyPoints) > 0 {
		if points, err := json.Marshal(rec.KeyPoints); err == nil {
			attrs["KeyPoints"] = string(points)
		}
	}

	if rec.Sentiment != nil {
		attrs["CustomerSentiment"] = fmt.Sprintf("%s (%.1f%%)", rec.Sentiment.Overall, rec.Sentiment.Score*100)
	}

	if len(rec.ActionItems) > 0 {
		attrs["ActionRequired"] = "true"
	}

	return attrs
}

// Truncate caps text at max characters, preferring to cut at a word
// boundary when one falls past 80% of the cap. The result never exceeds
// max characters and already-short text passes through unchanged.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	// Caps too small for an ellipsis degrade to a hard cut.
	if max <= 3 {
		if max < 0 {
			max = 0
		}
		return string(runes[:max])
	}

	cut := runes[:max-3]
	lastSpace := -1
	for i, r := range cut {
		if r == ' ' {
			lastSpace = i
		}
	}

	if lastSpace > int(float64(max)*0.8) {
		return string(cut[:lastSpace]) + "..."
	}
	return string(cut) + "..."
}

// FormatDuration renders seconds in the 時間/分/秒 form the contact flows
// display, omitting leading zero-valued units.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d時間%d分%d秒", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%d分%d秒", minutes, secs)
	default:
		return fmt.Sprintf("%d秒", secs)
	}
}
