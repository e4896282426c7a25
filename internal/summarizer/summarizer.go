// Package summarizer invokes the text-completion capability and assembles
// the summary record for one contact.
package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/scribe/internal/extractor"
	"github.com/MikeSquared-Agency/scribe/internal/faults"
	"github.com/MikeSquared-Agency/scribe/internal/prompt"
	"github.com/MikeSquared-Agency/scribe/internal/sentiment"
	"github.com/MikeSquared-Agency/scribe/internal/transcript"
)

// Generation settings for call summaries: bounded output, near-deterministic
// sampling.
const (
	maxSummaryTokens = 1000
	temperature      = 0.3
)

// Completer is the text-completion capability, treated as an opaque
// request/response boundary.
type Completer interface {
	Complete(ctx context.Context, userPrompt string, maxTokens int, temperature float64) (string, error)
}

type Generator struct {
	llm     Completer
	extract extractor.Strategy
	modelID string
	logger  *slog.Logger
}

func New(llm Completer, ext extractor.Strategy, modelID string, logger *slog.Logger) *Generator {
	return &Generator{llm: llm, extract: ext, modelID: modelID, logger: logger}
}

// Summarize runs one transcript through prompt rendering, generation,
// structured extraction and sentiment aggregation, and returns the
// assembled Record. Sentiment is computed from the original transcript
// segments, never from the generated text, so it stays independent of
// summarization quality.
func (g *Generator) Summarize(ctx context.Context, rec *transcript.Record, transcriptionKey string) (*Record, error) {
	p := prompt.Build(rec.Conversation())

	g.logger.Info("generating summary",
		"contact_id", rec.ContactID,
		"segments", len(rec.Segments),
		"model", g.modelID,
	)

	start := time.Now()
	raw, err := g.llm.Complete(ctx, p, maxSummaryTokens, temperature)
	if err != nil {
		return nil, fmt.Errorf("generate summary for contact %s: %w", rec.ContactID, err)
	}
	elapsed := time.Since(start).Milliseconds()

	if strings.TrimSpace(raw) == "" {
		return nil, &faults.GenerationEmptyError{Reason: "model returned blank text"}
	}

	keyPoints, actionItems := g.extract.Extract(raw)
	verdict := sentiment.Aggregate(rec.Segments)

	out := &Record{
		ContactID:                rec.ContactID,
		Summary:                  raw,
		OriginalTranscriptionKey: transcriptionKey,
		CreatedAt:                time.Now().UTC().Format(time.RFC3339),
		Metadata: Metadata{
			StartTime:      rec.Metadata.StartTime,
			EndTime:        rec.Metadata.EndTime,
			Duration:       rec.Metadata.Duration,
			Language:       rec.Metadata.Language,
			PhoneNumber:    rec.Metadata.PhoneNumber,
			QueueName:      rec.Metadata.QueueName,
			AgentID:        rec.Metadata.AgentID,
			ModelID:        g.modelID,
			ProcessingTime: elapsed,
		},
		KeyPoints:   keyPoints,
		ActionItems: actionItems,
		Sentiment:   &verdict,
	}

	g.logger.Info("summary generated",
		"contact_id", rec.ContactID,
		"processing_ms", elapsed,
		"key_points", len(keyPoints),
		"action_items", len(actionItems),
		"sentiment", string(verdict.Overall),
	)

	return out, nil
}
