// Package relay forwards prompt-discovery events to the marketing-automation
// webhook under a best-effort, never-fail-the-caller guarantee.
package relay

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

// DiscoveryEvent is what the discovery producer posts to the tracking
// endpoint. Only email and productCategory are required.
type DiscoveryEvent struct {
	Email           string `json:"email"`
	ProductCategory string `json:"productCategory"`
	Timestamp       string `json:"timestamp"`
	Source          string `json:"source"`
}

var ErrMissingFields = errors.New("missing required fields: email and productCategory")

func (e DiscoveryEvent) Validate() error {
	if e.Email == "" || e.ProductCategory == "" {
		return ErrMissingFields
	}
	return nil
}

// Attribution constants stamped onto every delivery.
const (
	leadSource = "prompt-discovery"
	campaign   = "prompt-discovery-alerts"
	platform   = "adforge-admin"
)

// DeliveryPayload is the one-way enrichment of a DiscoveryEvent sent to the
// webhook. It exists only for the duration of a single delivery attempt.
type DeliveryPayload struct {
	RequestID       string `json:"request_id"`
	Email           string `json:"email"`
	ProductCategory string `json:"product_category"`
	Source          string `json:"source"`

	LeadSource string `json:"lead_source"`
	Campaign   string `json:"campaign"`
	Platform   string `json:"platform"`

	TimestampISO   string `json:"timestamp_iso"`
	TimestampUnix  int64  `json:"timestamp_unix"`
	TimestampLocal string `json:"timestamp_local"`
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRequestID builds a correlation id of the form
// "pd_<epoch-millis>_<9 random base36 chars>". It is returned to the caller
// even though delivery success is never confirmed synchronously.
func NewRequestID(now time.Time) string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; here a
		// time-derived suffix keeps the id usable for correlation.
		return fmt.Sprintf("pd_%d_%09d", now.UnixMilli(), now.Nanosecond()%1e9)
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return fmt.Sprintf("pd_%d_%s", now.UnixMilli(), buf)
}

// BuildPayload derives the delivery payload. The caller-supplied timestamp is
// parsed as RFC 3339; anything unparseable falls back to now, since a bad
// timestamp must not fail the side channel.
func BuildPayload(event DiscoveryEvent, requestID string, now time.Time) DeliveryPayload {
	ts, err := time.Parse(time.RFC3339, event.Timestamp)
	if err != nil {
		ts = now
	}
	ts = ts.UTC()

	return DeliveryPayload{
		RequestID:       requestID,
		Email:           event.Email,
		ProductCategory: event.ProductCategory,
		Source:          event.Source,
		LeadSource:      leadSource,
		Campaign:        campaign,
		Platform:        platform,
		TimestampISO:    ts.Format(time.RFC3339),
		TimestampUnix:   ts.Unix(),
		TimestampLocal:  ts.Format("Jan 2, 2006, 3:04:05 PM MST"),
	}
}
