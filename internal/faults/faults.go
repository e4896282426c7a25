// Package faults defines the pipeline's error taxonomy and the retry
// classification handed to the event host.
package faults

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Class tells the event host whether redriving a failed record can succeed.
type Class string

const (
	// NonRetryable means the same input will fail the same way on redelivery.
	NonRetryable Class = "non_retryable"
	// Retryable means the failure was transient and redelivery may succeed.
	Retryable Class = "retryable"
	// Unknown is anything uncaught; the host treats it as retryable with a
	// bounded redelivery count.
	Unknown Class = "unknown"
)

// MalformedInputError marks a payload that will never become valid on retry.
type MalformedInputError struct {
	Key    string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input"
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// GenerationEmptyError means the model returned no usable text for this input.
type GenerationEmptyError struct {
	Reason string
}

func (e *GenerationEmptyError) Error() string {
	return "empty generation: " + e.Reason
}

// UpstreamUnavailableError covers throttling and outages of an external
// service the pipeline calls.
type UpstreamUnavailableError struct {
	Service string
	Status  int
	Err     error
}

func (e *UpstreamUnavailableError) Error() string {
	var b strings.Builder
	b.WriteString(e.Service)
	b.WriteString(" unavailable")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *UpstreamUnavailableError) Unwrap() error { return e.Err }

// UpdateFailureReason is the diagnostic sub-reason of a failed attribute push.
type UpdateFailureReason string

const (
	ReasonNotFound         UpdateFailureReason = "not-found"
	ReasonForbidden        UpdateFailureReason = "forbidden"
	ReasonInvalidParameter UpdateFailureReason = "invalid-parameter"
)

// AttributeUpdateError is the single error surfaced when the contact system
// rejects an attribute update. The sub-reason is recorded for diagnostics
// only; it never changes control flow.
type AttributeUpdateError struct {
	ContactID string
	Reason    UpdateFailureReason
	Err       error
}

func (e *AttributeUpdateError) Error() string {
	msg := fmt.Sprintf("attribute update failed for contact %s (%s)", e.ContactID, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AttributeUpdateError) Unwrap() error { return e.Err }

// ConfigurationError reports required configuration missing at startup. It is
// detected before any external service is touched and fails every record in
// a batch.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Classify maps a pipeline failure to a retry decision for the event host.
func Classify(err error) Class {
	var (
		malformed *MalformedInputError
		empty     *GenerationEmptyError
		upstream  *UpstreamUnavailableError
		update    *AttributeUpdateError
		config    *ConfigurationError
	)

	switch {
	case errors.As(err, &malformed), errors.As(err, &empty), errors.As(err, &config):
		return NonRetryable
	case errors.As(err, &upstream):
		return Retryable
	case errors.As(err, &update):
		if update.Reason == ReasonInvalidParameter {
			return NonRetryable
		}
		// not-found and forbidden may resolve after external intervention
		return Unknown
	case errors.Is(err, context.DeadlineExceeded):
		return Retryable
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Retryable
	}

	return Unknown
}
