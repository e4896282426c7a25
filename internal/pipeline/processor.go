// Package pipeline orchestrates the two processing stages: transcript to
// stored summary, and stored summary to contact attributes.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/scribe/internal/attributes"
	"github.com/MikeSquared-Agency/scribe/internal/events"
	"github.com/MikeSquared-Agency/scribe/internal/faults"
	"github.com/MikeSquared-Agency/scribe/internal/metrics"
	"github.com/MikeSquared-Agency/scribe/internal/summarizer"
	"github.com/MikeSquared-Agency/scribe/internal/transcript"
)

// ObjectStore is the keyed persistence collaborator. Summary writes are
// whole-record overwrites, so duplicate deliveries are safe.
type ObjectStore interface {
	GetTranscript(ctx context.Context, key string) ([]byte, error)
	PutSummary(ctx context.Context, key string, rec *summarizer.Record) error
	GetSummary(ctx context.Context, key string) (*summarizer.Record, error)
}

// Summarizer turns a normalized transcript into a summary record.
type Summarizer interface {
	Summarize(ctx context.Context, rec *transcript.Record, transcriptionKey string) (*summarizer.Record, error)
}

// AttributeSink pushes an attribute set onto a contact in the downstream
// system.
type AttributeSink interface {
	UpdateContactAttributes(ctx context.Context, contactID string, attrs map[string]string) error
}

// Publisher announces pipeline results on the event bus.
type Publisher interface {
	Publish(subject string, data any) error
}

// StoredEvent is the trigger payload for both stages: one or more
// references to stored objects. A transcript event may inline the payload;
// otherwise the store is consulted by key.
type StoredEvent struct {
	Records []StoredRecord `json:"records"`
}

type StoredRecord struct {
	Key        string          `json:"key"`
	Transcript json.RawMessage `json:"transcript,omitempty"`
}

type Processor struct {
	store   ObjectStore
	gen     Summarizer
	sink    AttributeSink
	pub     Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(store ObjectStore, gen Summarizer, sink AttributeSink, pub Publisher, m *metrics.Metrics, logger *slog.Logger) *Processor {
	return &Processor{
		store:   store,
		gen:     gen,
		sink:    sink,
		pub:     pub,
		metrics: m,
		logger:  logger,
	}
}

// HandleTranscriptStored processes a batch of transcript references
// sequentially. The first failure aborts the remaining records; summaries
// already written for earlier records stay written (at-least-once, not
// exactly-once). External calls inherit ctx's deadline, so a batch that
// outlives its delivery window fails on the record in flight.
func (p *Processor) HandleTranscriptStored(ctx context.Context, subject string, data []byte) error {
	var evt StoredEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return &faults.MalformedInputError{Reason: "invalid trigger payload", Err: err}
	}

	batchID := uuid.New()
	for i, rec := range evt.Records {
		if err := p.processTranscript(ctx, rec); err != nil {
			p.metrics.TranscriptsFailed.WithLabelValues(string(faults.Classify(err))).Inc()
			p.logger.Error("transcript processing failed",
				"batch_id", batchID,
				"key", rec.Key,
				"remaining", len(evt.Records)-i-1,
				"error", err,
			)
			return fmt.Errorf("record %d (%s): %w", i, rec.Key, err)
		}
		p.metrics.TranscriptsProcessed.Inc()
	}
	return nil
}

func (p *Processor) processTranscript(ctx context.Context, stored StoredRecord) error {
	payload := []byte(stored.Transcript)
	if len(payload) == 0 {
		var err error
		payload, err = p.store.GetTranscript(ctx, stored.Key)
		if err != nil {
			return fmt.Errorf("fetch transcript: %w", err)
		}
	}

	rec, err := transcript.Parse(stored.Key, payload)
	if err != nil {
		return err
	}

	p.logger.Info("processing transcript", "contact_id", rec.ContactID, "key", stored.Key)

	sum, err := p.gen.Summarize(ctx, rec, stored.Key)
	if err != nil {
		return err
	}
	p.metrics.GenerationSeconds.Observe(float64(sum.Metadata.ProcessingTime) / 1000)

	key := summarizer.StorageKey(sum.ContactID)
	if err := p.store.PutSummary(ctx, key, sum); err != nil {
		return fmt.Errorf("persist summary: %w", err)
	}
	p.metrics.SummariesStored.Inc()

	// Announce the stored summary; this is what triggers the attribute stage.
	if err := p.pub.Publish(events.SubjectSummaryStored, StoredEvent{
		Records: []StoredRecord{{Key: key}},
	}); err != nil {
		p.logger.Warn("failed to announce stored summary", "contact_id", sum.ContactID, "error", err)
	}

	p.logger.Info("summary stored",
		"contact_id", sum.ContactID,
		"key", key,
		"processing_ms", sum.Metadata.ProcessingTime,
	)
	return nil
}

// HandleSummaryStored processes a batch of summary references sequentially,
// pushing each summary's attribute set to the contact system. Same partial
// batch semantics as HandleTranscriptStored.
func (p *Processor) HandleSummaryStored(ctx context.Context, subject string, data []byte) error {
	var evt StoredEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return &faults.MalformedInputError{Reason: "invalid trigger payload", Err: err}
	}

	batchID := uuid.New()
	for i, rec := range evt.Records {
		if err := p.updateContact(ctx, rec.Key); err != nil {
			p.metrics.ContactUpdatesFailed.WithLabelValues(string(faults.Classify(err))).Inc()
			p.logger.Error("contact update failed",
				"batch_id", batchID,
				"key", rec.Key,
				"remaining", len(evt.Records)-i-1,
				"error", err,
			)
			return fmt.Errorf("record %d (%s): %w", i, rec.Key, err)
		}
		p.metrics.ContactsUpdated.Inc()
	}
	return nil
}

func (p *Processor) updateContact(ctx context.Context, key string) error {
	sum, err := p.store.GetSummary(ctx, key)
	if err != nil {
		return fmt.Errorf("fetch summary: %w", err)
	}

	attrs := attributes.Map(sum, key)

	p.logger.Info("updating contact attributes",
		"contact_id", sum.ContactID,
		"key", key,
		"attributes", len(attrs),
	)

	if err := p.sink.UpdateContactAttributes(ctx, sum.ContactID, attrs); err != nil {
		return err
	}
	return nil
}
