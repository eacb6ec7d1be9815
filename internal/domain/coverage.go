package domain

// CoverageFlags is the fixed capability set attached to a coverage tier.
// Flags are defined per tier, never per individual policy.
type CoverageFlags struct {
	CivilLiability     bool `json:"civil_liability"`
	MedicalExpenses    bool `json:"medical_expenses"`
	Theft              bool `json:"theft"`
	MaterialDamage     bool `json:"material_damage"`
	RoadsideAssistance bool `json:"roadside_assistance"`
	Geolocation        bool `json:"geolocation"`
}

type TierID string

const (
	TierCivilLiability TierID = "CIVIL_LIABILITY"
	TierBasic          TierID = "BASIC"
	TierComprehensive  TierID = "COMPREHENSIVE"
)

// CoverageTier is one of exactly three fixed coverage/price packages.
type CoverageTier struct {
	ID          TierID        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Multiplier  float64       `json:"multiplier"`
	Coverage    CoverageFlags `json:"coverage"`
}

// tierCatalog is the canonical tier catalog, defined once at process start.
// A cached mirror may be served for display but is never the pricing
// authority.
var tierCatalog = []CoverageTier{
	{
		ID:          TierCivilLiability,
		Name:        "Civil Liability",
		Description: "Mandatory third-party civil liability",
		Multiplier:  1.0,
		Coverage: CoverageFlags{
			CivilLiability: true,
		},
	},
	{
		ID:          TierBasic,
		Name:        "Basic",
		Description: "Protection against damage to third parties",
		Multiplier:  1.5,
		Coverage: CoverageFlags{
			CivilLiability:     true,
			MedicalExpenses:    true,
			RoadsideAssistance: true,
		},
	},
	{
		ID:          TierComprehensive,
		Name:        "Comprehensive",
		Description: "Full protection for your vehicle",
		Multiplier:  2.5,
		Coverage: CoverageFlags{
			CivilLiability:     true,
			MedicalExpenses:    true,
			Theft:              true,
			MaterialDamage:     true,
			RoadsideAssistance: true,
			Geolocation:        true,
		},
	},
}

// TierCatalog returns the catalog in canonical order: CivilLiability, Basic,
// Comprehensive. Callers must not mutate the returned slice.
func TierCatalog() []CoverageTier {
	return tierCatalog
}

// TierByID looks a tier up in the catalog.
func TierByID(id TierID) (CoverageTier, bool) {
	for _, t := range tierCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return CoverageTier{}, false
}

// Quote is an ephemeral priced offer for one tier. Quotes are produced fresh
// on every pricing request and are never persisted.
type Quote struct {
	Tier        TierID        `json:"tier"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	BasePremium int64         `json:"base_premium"`
	FinalPrice  int64         `json:"final_price"`
	Coverage    CoverageFlags `json:"coverage"`
}
