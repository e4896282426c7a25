package transcript

import (
	"encoding/json"

	"github.com/MikeSquared-Agency/scribe/internal/faults"
)

// Parse validates a raw transcript payload and reshapes it into a Record.
// Any violation is a faults.MalformedInputError: the payload will never
// become valid on redelivery.
func Parse(key string, payload []byte) (*Record, error) {
	if len(payload) == 0 {
		return nil, &faults.MalformedInputError{Key: key, Reason: "empty payload"}
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, &faults.MalformedInputError{Key: key, Reason: "invalid json", Err: err}
	}

	if rec.ContactID == "" {
		return nil, &faults.MalformedInputError{Key: key, Reason: "contactId missing"}
	}
	if len(rec.Segments) == 0 {
		return nil, &faults.MalformedInputError{Key: key, Reason: "no segments"}
	}

	return &rec, nil
}
