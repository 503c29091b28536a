package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adforge-dev/adforge-admin/internal/platform/logger"
)

// DefaultDeliveryTimeout bounds a single delivery attempt. On timeout the
// pending delivery is abandoned, not retried.
const DefaultDeliveryTimeout = 10 * time.Second

// Relay performs one POST-style delivery attempt per event. Every delivery
// failure (timeout, non-2xx, transport error) is logged and absorbed: the
// caller learns the request id, never the outcome.
type Relay struct {
	url     string
	client  *http.Client
	timeout time.Duration
	log     *logger.Logger
}

// New builds a relay for the configured destination URL. An empty URL means
// deliveries are skipped, which is not an error.
func New(url string, log *logger.Logger) *Relay {
	return &Relay{
		url:     url,
		client:  &http.Client{},
		timeout: DefaultDeliveryTimeout,
		log:     log,
	}
}

// WithTimeout overrides the delivery timeout. Tests use this to exercise the
// timeout path without waiting ten real seconds.
func (r *Relay) WithTimeout(d time.Duration) *Relay {
	r.timeout = d
	return r
}

// Outcome reports what happened to one tracked event. The request id is
// always usable. Err, when set, describes an absorbed delivery failure and
// must not be surfaced as one. Delivered false with a nil Err means delivery
// was skipped because no destination is configured.
type Outcome struct {
	RequestID string
	Delivered bool
	Err       error
}

// Forward builds the delivery payload and attempts a single delivery.
func (r *Relay) Forward(event DiscoveryEvent) Outcome {
	now := time.Now()
	requestID := NewRequestID(now)

	if r.url == "" {
		r.log.Info("marketing webhook not configured, skipping delivery", "request_id", requestID)
		return Outcome{RequestID: requestID}
	}

	payload := BuildPayload(event, requestID, now)
	if err := r.deliver(payload); err != nil {
		r.log.Warn("prompt discovery delivery failed",
			"request_id", requestID, "product_category", event.ProductCategory, "error", err)
		return Outcome{RequestID: requestID, Err: err}
	}

	r.log.Info("prompt discovery delivered",
		"request_id", requestID, "product_category", event.ProductCategory)
	return Outcome{RequestID: requestID, Delivered: true}
}

func (r *Relay) deliver(payload DeliveryPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// The delivery deadline is independent of the inbound request: once
	// dispatched, the attempt runs to completion or timeout on its own.
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
