// Package taxonomy defines the three configurable resource kinds served by
// the admin backend and the defaulting rules their records share.
package taxonomy

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies one of the configurable taxonomies.
type Kind string

const (
	KindBrand       Kind = "brand_profiles"
	KindDemographic Kind = "demographic_profiles"
	KindLegal       Kind = "legal_guidelines"
)

// Kinds lists every taxonomy, in the order the admin UI renders them.
func Kinds() []Kind {
	return []Kind{KindBrand, KindDemographic, KindLegal}
}

var (
	ErrNameRequired = errors.New("name is required")
	ErrIDRequired   = errors.New("id is required")
)

// Resource is the contract every taxonomy record satisfies. Normalize must be
// total and idempotent: after it runs, every declared field of the record is
// populated, and running it twice with the same arguments changes nothing
// except updated_at.
type Resource interface {
	// Validate enforces create-time rules (name required).
	Validate() error
	// ValidateUpdate enforces update-time rules (id required).
	ValidateUpdate() error
	// Normalize fills defaults. created_at is preserved only when
	// preserveCreatedAt is set and the caller supplied a value; updated_at is
	// always regenerated.
	Normalize(now time.Time, preserveCreatedAt bool)
	// RecordID returns the record's id, which may be empty before insert.
	RecordID() string
}

// Timestamp renders t the way every record timestamp is stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NewDemoID builds the id assigned to records created without a backing
// store, e.g. "custom-1712345678901".
func NewDemoID(now time.Time) string {
	return fmt.Sprintf("custom-%d", now.UnixMilli())
}

func boolPtr(b bool) *bool { return &b }

func normalizeCommon(isActive **bool, createdAt, updatedAt *string, now time.Time, preserveCreatedAt bool) {
	if *isActive == nil {
		*isActive = boolPtr(true)
	}
	if !preserveCreatedAt || *createdAt == "" {
		*createdAt = Timestamp(now)
	}
	*updatedAt = Timestamp(now)
}
