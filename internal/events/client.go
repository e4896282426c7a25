// Package events is the NATS connection the pipeline is triggered from and
// announces results on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MikeSquared-Agency/scribe/internal/faults"
)

// Pipeline subjects.
const (
	// SubjectTranscriptStored delivers references to newly stored
	// transcripts (trigger A).
	SubjectTranscriptStored = "contact.transcript.stored"
	// SubjectSummaryStored delivers references to newly stored summaries
	// (trigger B). The pipeline publishes it after persisting a summary.
	SubjectSummaryStored = "contact.summary.stored"
	// SubjectProcessingFailed carries failure diagnostics, including the
	// retry classification the event host acts on.
	SubjectProcessingFailed = "scribe.processing.failed"
)

// handlerTimeout bounds one delivery end to end; store and model calls
// inherit it through the handler's context.
const handlerTimeout = 2 * time.Minute

// Failure is the diagnostic payload published when a handler fails. The
// pipeline performs no retry loop itself; redelivery vs dead-lettering is
// the host's call based on Class.
type Failure struct {
	Subject string `json:"subject"`
	Class   string `json:"class"`
	Error   string `json:"error"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

// Subscribe registers a handler. Each delivery runs under a deadline so a
// stalled external call cannot hold the handler forever. A handler error is
// classified and published on SubjectProcessingFailed for the event host;
// it is never swallowed silently and never retried here.
func (c *Client) Subscribe(subject string, handler func(ctx context.Context, subject string, data []byte) error) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := handler(ctx, msg.Subject, msg.Data); err != nil {
			class := faults.Classify(err)
			c.logger.Error("event handler failed",
				"subject", msg.Subject,
				"class", string(class),
				"error", err,
			)
			if pubErr := c.Publish(SubjectProcessingFailed, Failure{
				Subject: msg.Subject,
				Class:   string(class),
				Error:   err.Error(),
			}); pubErr != nil {
				c.logger.Error("failed to publish failure event", "error", pubErr)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
