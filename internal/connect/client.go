// Package connect pushes contact attributes to the downstream
// contact-handling system over its HTTP API.
package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/scribe/internal/faults"
)

type Client struct {
	baseURL    string
	instanceID string
	client     *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, instanceID string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		instanceID: instanceID,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type updateRequest struct {
	InstanceID       string            `json:"instanceId"`
	InitialContactID string            `json:"initialContactId"`
	Attributes       map[string]string `json:"attributes"`
}

// UpdateContactAttributes writes the attribute set onto the contact.
// Rejections by the contact system are distinguished in logs but all
// propagate as one faults.AttributeUpdateError; none are swallowed.
func (c *Client) UpdateContactAttributes(ctx context.Context, contactID string, attrs map[string]string) error {
	body, err := json.Marshal(updateRequest{
		InstanceID:       c.instanceID,
		InitialContactID: contactID,
		Attributes:       attrs,
	})
	if err != nil {
		return fmt.Errorf("marshal update payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contacts/attributes", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &faults.UpstreamUnavailableError{Service: "contact api", Err: err}
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
		c.logger.Info("contact attributes updated", "contact_id", contactID, "attributes", len(attrs))
		return nil

	case resp.StatusCode == http.StatusNotFound:
		c.logger.Error("contact or instance not found, check instance id and contact id",
			"contact_id", contactID, "instance_id", c.instanceID)
		return c.updateError(contactID, faults.ReasonNotFound, resp.StatusCode, respBody)

	case resp.StatusCode == http.StatusForbidden:
		c.logger.Error("access denied by the contact attribute api", "contact_id", contactID)
		return c.updateError(contactID, faults.ReasonForbidden, resp.StatusCode, respBody)

	case resp.StatusCode == http.StatusBadRequest:
		c.logger.Error("invalid parameter, check contact id format and attribute values",
			"contact_id", contactID)
		return c.updateError(contactID, faults.ReasonInvalidParameter, resp.StatusCode, respBody)

	case resp.StatusCode >= http.StatusInternalServerError:
		return &faults.UpstreamUnavailableError{
			Service: "contact api",
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("%s", respBody),
		}

	default:
		return fmt.Errorf("contact api returned %d: %s", resp.StatusCode, respBody)
	}
}

func (c *Client) updateError(contactID string, reason faults.UpdateFailureReason, status int, body []byte) error {
	return &faults.AttributeUpdateError{
		ContactID: contactID,
		Reason:    reason,
		Err:       fmt.Errorf("contact api returned %d: %s", status, body),
	}
}
