package summarizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MikeSquared-Agency/scribe/internal/extractor"
	"github.com/MikeSquared-Agency/scribe/internal/faults"
	"github.com/MikeSquared-Agency/scribe/internal/transcript"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubCompleter struct {
	response string
	err      error
	prompt   string
}

func (s *stubCompleter) Complete(ctx context.Context, userPrompt string, maxTokens int, temperature float64) (string, error) {
	s.prompt = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testTranscript() *transcript.Record {
	return &transcript.Record{
		ContactID: "c-1",
		Segments: []transcript.Segment{
			{Speaker: transcript.SpeakerAgent, Content: "お電話ありがとうございます", Sentiment: transcript.SentimentPositive},
			{Speaker: transcript.SpeakerCustomer, Content: "ありがとうございました", Sentiment: transcript.SentimentPositive},
		},
		Metadata: transcript.Metadata{
			StartTime: "2026-08-30T10:00:00Z",
			EndTime:   "2026-08-30T10:05:00Z",
			Duration:    300,
			Language:    "ja-JP",
			PhoneNumber: "+81312345678",
			QueueName:   "support",
			AgentID:     "agent-7",
		},
	}
}

func TestSummarize_Success(t *testing.T) {
	llm := &stubCompleter{response: `【通話の目的】
テスト

【重要なポイント】
• ポイント1
• ポイント2

【問題の状況】
解決済み

【アクションアイテム】
• フォローアップ

【顧客感情】
ポジティブ`}

	gen := New(llm, extractor.Marker{}, "test-model", discardLogger())

	rec, err := gen.Summarize(context.Background(), testTranscript(), "transcripts/c-1.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ContactID != "c-1" {
		t.Errorf("expected contact c-1, got %q", rec.ContactID)
	}
	if rec.Summary != llm.response {
		t.Error("summary should be the raw model response")
	}
	if rec.OriginalTranscriptionKey != "transcripts/c-1.json" {
		t.Errorf("unexpected transcription key %q", rec.OriginalTranscriptionKey)
	}
	if rec.CreatedAt == "" {
		t.Error("createdAt not stamped")
	}
	if rec.Metadata.ModelID != "test-model" {
		t.Errorf("expected model id on metadata, got %q", rec.Metadata.ModelID)
	}
	wantMeta := Metadata{
		StartTime:   "2026-08-30T10:00:00Z",
		EndTime:     "2026-08-30T10:05:00Z",
		Duration:    300,
		Language:    "ja-JP",
		PhoneNumber: "+81312345678",
		QueueName:   "support",
		AgentID:     "agent-7",
		ModelID:     "test-model",
	}
	gotMeta := rec.Metadata
	gotMeta.ProcessingTime = 0
	if diff := cmp.Diff(wantMeta, gotMeta); diff != "" {
		t.Errorf("transcript metadata not copied (-want +got):\n%s", diff)
	}
	if rec.Metadata.ProcessingTime < 0 {
		t.Errorf("processing time must be non-negative, got %d", rec.Metadata.ProcessingTime)
	}

	if diff := cmp.Diff([]string{"ポイント1", "ポイント2"}, rec.KeyPoints); diff != "" {
		t.Errorf("key points mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"フォローアップ"}, rec.ActionItems); diff != "" {
		t.Errorf("action items mismatch (-want +got):\n%s", diff)
	}

	// Sentiment comes from the transcript segments, not the generated text.
	if rec.Sentiment == nil {
		t.Fatal("expected sentiment verdict")
	}
	if rec.Sentiment.Overall != transcript.SentimentPositive || rec.Sentiment.Score != 1.0 {
		t.Errorf("expected POSITIVE 1.0 from segments, got %+v", rec.Sentiment)
	}
}

func TestSummarize_PromptContainsConversation(t *testing.T) {
	llm := &stubCompleter{response: "要約"}
	gen := New(llm, extractor.Marker{}, "test-model", discardLogger())

	if _, err := gen.Summarize(context.Background(), testTranscript(), "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Agent: お電話ありがとうございます", "Customer: ありがとうございました"} {
		if !strings.Contains(llm.prompt, want) {
			t.Errorf("prompt missing conversation line %q", want)
		}
	}
}

func TestSummarize_CompleterError(t *testing.T) {
	upstream := &faults.UpstreamUnavailableError{Service: "anthropic", Status: 429}
	llm := &stubCompleter{err: upstream}
	gen := New(llm, extractor.Marker{}, "test-model", discardLogger())

	_, err := gen.Summarize(context.Background(), testTranscript(), "k")
	if err == nil {
		t.Fatal("expected error")
	}
	var unavailable *faults.UpstreamUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected wrapped UpstreamUnavailableError, got %T: %v", err, err)
	}
}

func TestSummarize_BlankResponse(t *testing.T) {
	llm := &stubCompleter{response: "   \n\t"}
	gen := New(llm, extractor.Marker{}, "test-model", discardLogger())

	_, err := gen.Summarize(context.Background(), testTranscript(), "k")
	var empty *faults.GenerationEmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("expected GenerationEmptyError, got %T: %v", err, err)
	}
}

func TestStorageKey(t *testing.T) {
	if got := StorageKey("c-1"); got != "summaries/c-1-summary.json" {
		t.Errorf("unexpected storage key %q", got)
	}
}
