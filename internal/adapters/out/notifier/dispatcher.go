// Package notifier delivers outbox events to the notification system's
// webhook endpoint.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/pkg/errs"
)

const requestTimeout = 10 * time.Second

// WebhookDispatcher posts events to a webhook URL. Failures surface to the
// caller; the outbox relay retries them on its next run.
type WebhookDispatcher struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookDispatcher creates a dispatcher posting to the given webhook URL.
func NewWebhookDispatcher(webhookURL string) (*WebhookDispatcher, error) {
	if webhookURL == "" {
		return nil, errs.NewValueIsRequiredError("webhookURL")
	}

	return &WebhookDispatcher{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type eventPayload struct {
	EventID    string   `json:"eventId"`
	Kind       string   `json:"kind"`
	ProposalID string   `json:"proposalId"`
	ResultURL  string   `json:"resultUrl,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	OccurredAt string   `json:"occurredAt"`
}

// Dispatch posts the event to the webhook. Any non-2xx response is an error.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *notification.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	payload := eventPayload{
		EventID:    event.ID().String(),
		Kind:       string(event.Kind()),
		ProposalID: event.ProposalID().String(),
		ResultURL:  event.ResultURL(),
		Locations:  event.Locations(),
		OccurredAt: event.CreatedAt().Format(time.RFC3339),
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch %s event: %w", event.Kind(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification system responded with status %d", resp.StatusCode)
	}
	return nil
}
