// Package transcript holds the transcribed-call data model and the
// normalizer that turns a raw payload into an ordered conversation.
package transcript

import "strings"

// Speaker identifies which side of the call produced a segment.
type Speaker string

const (
	SpeakerAgent    Speaker = "Agent"
	SpeakerCustomer Speaker = "Customer"
)

// Sentiment is the per-utterance label attached by the upstream transcriber.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Segment is one speaker turn. Immutable once produced upstream.
type Segment struct {
	Speaker    Speaker   `json:"speaker"`
	Content    string    `json:"content"`
	Timestamp  string    `json:"timestamp"`
	Confidence *float64  `json:"confidence,omitempty"`
	Sentiment  Sentiment `json:"sentiment,omitempty"`
}

// Metadata carries call-level facts from the transcription producer.
type Metadata struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Duration    int    `json:"duration"` // seconds
	Language    string `json:"language,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	QueueName   string `json:"queueName,omitempty"`
	AgentID     string `json:"agentId,omitempty"`
}

// Record is one call's transcript. Segment order is chronological and
// significant end-to-end.
type Record struct {
	ContactID string    `json:"contactId"`
	Segments  []Segment `json:"segments"`
	Metadata  Metadata  `json:"metadata"`
}

// Conversation renders the transcript as one "<speaker>: <content>" line per
// segment, in order. The prompt template depends on this exact format.
func (r *Record) Conversation() string {
	lines := make([]string, len(r.Segments))
	for i, seg := range r.Segments {
		lines[i] = string(seg.Speaker) + ": " + seg.Content
	}
	return strings.Join(lines, "\n")
}
