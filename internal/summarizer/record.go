package summarizer

import (
	"github.com/MikeSquared-Agency/scribe/internal/sentiment"
)

// Metadata is the transcript metadata copied onto the summary, plus the
// model identifier and the generation stage's elapsed time.
type Metadata struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Duration       int    `json:"duration"` // seconds
	Language       string `json:"language,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	QueueName      string `json:"queueName,omitempty"`
	AgentID        string `json:"agentId,omitempty"`
	ModelID        string `json:"modelId"`
	ProcessingTime int64  `json:"processingTime"` // milliseconds
}

// Record is the summary artifact for one contact. It is created once and
// never mutated; the store overwrites by contact so reprocessing leaves at
// most one live version.
type Record struct {
	ContactID                string             `json:"contactId"`
	Summary                  string             `json:"summary"`
	OriginalTranscriptionKey string             `json:"originalTranscriptionKey"`
	CreatedAt                string             `json:"createdAt"`
	Metadata                 Metadata           `json:"metadata"`
	KeyPoints                []string           `json:"keyPoints,omitempty"`
	ActionItems              []string           `json:"actionItems,omitempty"`
	Sentiment                *sentiment.Verdict `json:"sentiment,omitempty"`
}

// StorageKey is the deterministic key a contact's summary is stored under.
func StorageKey(contactID string) string {
	return "summaries/" + contactID + "-summary.json"
}
