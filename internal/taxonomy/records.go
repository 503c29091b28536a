package taxonomy

import "time"

// BrandProfile describes the voice and identity of a brand the content
// generator writes for.
type BrandProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
	Logo        string `json:"logo"`
	IsActive    *bool  `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (b *BrandProfile) Validate() error {
	if b.Name == "" {
		return ErrNameRequired
	}
	return nil
}

func (b *BrandProfile) ValidateUpdate() error {
	if b.ID == "" {
		return ErrIDRequired
	}
	return nil
}

func (b *BrandProfile) Normalize(now time.Time, preserveCreatedAt bool) {
	normalizeCommon(&b.IsActive, &b.CreatedAt, &b.UpdatedAt, now, preserveCreatedAt)
}

func (b *BrandProfile) RecordID() string { return b.ID }

// DemographicProfile describes an audience segment. Creating one triggers
// persona-prompt enrichment as a side effect.
type DemographicProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	AgeRange        string   `json:"age_range"`
	Characteristics []string `json:"characteristics"`
	IsActive        *bool    `json:"is_active"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func (d *DemographicProfile) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}
	return nil
}

func (d *DemographicProfile) ValidateUpdate() error {
	if d.ID == "" {
		return ErrIDRequired
	}
	return nil
}

func (d *DemographicProfile) Normalize(now time.Time, preserveCreatedAt bool) {
	if d.Characteristics == nil {
		d.Characteristics = []string{}
	}
	normalizeCommon(&d.IsActive, &d.CreatedAt, &d.UpdatedAt, now, preserveCreatedAt)
}

func (d *DemographicProfile) RecordID() string { return d.ID }

// LegalGuideline bundles the compliance rules content must be checked
// against for a given market or vertical.
type LegalGuideline struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	Rules                  []string `json:"rules"`
	SeverityLevels         []string `json:"severity_levels"`
	ComplianceRequirements []string `json:"compliance_requirements"`
	IsActive               *bool    `json:"is_active"`
	CreatedAt              string   `json:"created_at"`
	UpdatedAt              string   `json:"updated_at"`
}

func (l *LegalGuideline) Validate() error {
	if l.Name == "" {
		return ErrNameRequired
	}
	return nil
}

func (l *LegalGuideline) ValidateUpdate() error {
	if l.ID == "" {
		return ErrIDRequired
	}
	return nil
}

func (l *LegalGuideline) Normalize(now time.Time, preserveCreatedAt bool) {
	if l.Rules == nil {
		l.Rules = []string{}
	}
	if l.SeverityLevels == nil {
		l.SeverityLevels = []string{}
	}
	if l.ComplianceRequirements == nil {
		l.ComplianceRequirements = []string{}
	}
	normalizeCommon(&l.IsActive, &l.CreatedAt, &l.UpdatedAt, now, preserveCreatedAt)
}

func (l *LegalGuideline) RecordID() string { return l.ID }
