// Package sentiment reduces per-utterance sentiment labels to one
// call-level verdict.
package sentiment

import "github.com/MikeSquared-Agency/scribe/internal/transcript"

// Verdict is the call-level result. Score is the strength of the verdict,
// not a probability of positivity.
type Verdict struct {
	Overall transcript.Sentiment `json:"overall"`
	Score   float64              `json:"score"`
}

// Aggregate computes the call-level verdict from the segment sequence.
// Unlabeled segments are ignored; with no labeled segments at all the
// result is the defined fallback {NEUTRAL, 0.5}.
//
// The thresholds are asymmetric on purpose: a positive verdict needs a
// strong majority while a moderate negative share already flags
// dissatisfaction.
func Aggregate(segs []transcript.Segment) Verdict {
	var positive, negative, total int
	for _, seg := range segs {
		switch seg.Sentiment {
		case transcript.SentimentPositive:
			positive++
			total++
		case transcript.SentimentNegative:
			negative++
			total++
		case transcript.SentimentNeutral:
			total++
		}
	}

	if total == 0 {
		return Verdict{Overall: transcript.SentimentNeutral, Score: 0.5}
	}

	positiveRatio := float64(positive) / float64(total)
	negativeRatio := float64(negative) / float64(total)

	switch {
	case positiveRatio > 0.6:
		return Verdict{Overall: transcript.SentimentPositive, Score: positiveRatio}
	case negativeRatio > 0.4:
		return Verdict{Overall: transcript.SentimentNegative, Score: 1 - negativeRatio}
	default:
		return Verdict{Overall: transcript.SentimentNeutral, Score: 0.5}
	}
}
