package taxonomy

import "encoding/json"

// The demo datasets below stand in for a database when no store backend is
// configured. They are returned as fresh copies so callers can never mutate
// the snapshot itself.

var demoBrands = []BrandProfile{
	{
		ID:          "brand-001",
		Name:        "Northwind Outfitters",
		Description: "Outdoor apparel brand with a focus on sustainability",
		Tone:        "adventurous, down-to-earth",
		Logo:        "https://cdn.adforge.dev/demo/northwind.svg",
		IsActive:    boolPtr(true),
		CreatedAt:   "2024-01-15T09:00:00Z",
		UpdatedAt:   "2024-01-15T09:00:00Z",
	},
	{
		ID:          "brand-002",
		Name:        "Lumen Labs",
		Description: "Consumer electronics startup",
		Tone:        "precise, optimistic",
		Logo:        "https://cdn.adforge.dev/demo/lumen.svg",
		IsActive:    boolPtr(true),
		CreatedAt:   "2024-02-02T14:30:00Z",
		UpdatedAt:   "2024-02-02T14:30:00Z",
	},
}

var demoDemographics = []DemographicProfile{
	{
		ID:              "demo-001",
		Name:            "Urban Millennials",
		Description:     "City-dwelling professionals aged 25-40",
		AgeRange:        "25-40",
		Characteristics: []string{"mobile-first", "value-conscious", "brand-aware"},
		IsActive:        boolPtr(true),
		CreatedAt:       "2024-01-20T10:00:00Z",
		UpdatedAt:       "2024-01-20T10:00:00Z",
	},
	{
		ID:              "demo-002",
		Name:            "Active Retirees",
		Description:     "Recently retired consumers with disposable income",
		AgeRange:        "60-75",
		Characteristics: []string{"loyalty-driven", "email-responsive"},
		IsActive:        boolPtr(true),
		CreatedAt:       "2024-01-22T16:45:00Z",
		UpdatedAt:       "2024-01-22T16:45:00Z",
	},
}

var demoLegalGuidelines = []LegalGuideline{
	{
		ID:                     "legal-001",
		Name:                   "US Consumer Advertising",
		Description:            "FTC truth-in-advertising baseline",
		Rules:                  []string{"no unsubstantiated claims", "disclose material connections"},
		SeverityLevels:         []string{"low", "medium", "high"},
		ComplianceRequirements: []string{"FTC Act Section 5"},
		IsActive:               boolPtr(true),
		CreatedAt:              "2024-01-10T08:00:00Z",
		UpdatedAt:              "2024-01-10T08:00:00Z",
	},
}

// DemoSnapshot returns the fallback dataset for every taxonomy, encoded the
// way the store layer carries records.
func DemoSnapshot() map[Kind][]json.RawMessage {
	return map[Kind][]json.RawMessage{
		KindBrand:       DemoRecords(KindBrand),
		KindDemographic: DemoRecords(KindDemographic),
		KindLegal:       DemoRecords(KindLegal),
	}
}

// DemoRecords returns the fallback dataset for one taxonomy.
func DemoRecords(kind Kind) []json.RawMessage {
	switch kind {
	case KindBrand:
		return marshalAll(demoBrands)
	case KindDemographic:
		return marshalAll(demoDemographics)
	case KindLegal:
		return marshalAll(demoLegalGuidelines)
	default:
		return nil
	}
}

func marshalAll[T any](records []T) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(records))
	for i := range records {
		doc, err := json.Marshal(&records[i])
		if err != nil {
			// The demo dataset is static; a marshal failure is a programming
			// error, not a runtime condition.
			panic(err)
		}
		out = append(out, doc)
	}
	return out
}
