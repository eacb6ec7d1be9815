package domain

import "time"

type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "PENDING"
	ClaimStatusInReview  ClaimStatus = "IN_REVIEW"
	ClaimStatusApproved  ClaimStatus = "APPROVED"
	ClaimStatusRejected  ClaimStatus = "REJECTED"
	ClaimStatusCompleted ClaimStatus = "COMPLETED"
)

// claimTransitions is the full transition table. Rejected and Completed are
// terminal and deliberately absent.
var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimStatusPending:  {ClaimStatusInReview},
	ClaimStatusInReview: {ClaimStatusApproved, ClaimStatusRejected},
	ClaimStatusApproved: {ClaimStatusCompleted},
}

// ValidateTransition checks whether a claim may move from one status to
// another.
func ValidateTransition(from, to ClaimStatus) error {
	for _, next := range claimTransitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidStatusTransition
}

type IncidentType string

const (
	IncidentCollision        IncidentType = "COLLISION"
	IncidentRoadside         IncidentType = "ROADSIDE"
	IncidentGlassBreakage    IncidentType = "GLASS_BREAKAGE"
	IncidentTheft            IncidentType = "THEFT"
	IncidentThirdPartyDamage IncidentType = "THIRD_PARTY_DAMAGE"
)

// IncidentCatalog lists the claim categories in display order.
var IncidentCatalog = []IncidentType{
	IncidentCollision,
	IncidentRoadside,
	IncidentGlassBreakage,
	IncidentTheft,
	IncidentThirdPartyDamage,
}

// requiredCoverage maps each incident type to the single coverage flag a
// policy's tier must carry for the claim to be filed. Third-party damage is
// special-cased in EligibleIncidentTypes: it is covered by every tier.
var requiredCoverage = map[IncidentType]func(CoverageFlags) bool{
	IncidentCollision:        func(f CoverageFlags) bool { return f.MaterialDamage },
	IncidentRoadside:         func(f CoverageFlags) bool { return f.RoadsideAssistance },
	IncidentGlassBreakage:    func(f CoverageFlags) bool { return f.MaterialDamage },
	IncidentTheft:            func(f CoverageFlags) bool { return f.Theft },
	IncidentThirdPartyDamage: func(f CoverageFlags) bool { return f.CivilLiability },
}

// EligibleIncidentTypes returns every incident type whose required coverage
// flag is present in the tier, plus third-party damage unconditionally.
func EligibleIncidentTypes(tier CoverageTier) []IncidentType {
	var eligible []IncidentType
	for _, it := range IncidentCatalog {
		if it == IncidentThirdPartyDamage {
			eligible = append(eligible, it)
			continue
		}
		if covered, ok := requiredCoverage[it]; ok && covered(tier.Coverage) {
			eligible = append(eligible, it)
		}
	}
	return eligible
}

// IncidentCoveredBy reports whether the tier covers the incident type.
func IncidentCoveredBy(tier CoverageTier, incident IncidentType) error {
	if incident == IncidentThirdPartyDamage {
		return nil
	}
	covered, ok := requiredCoverage[incident]
	if !ok || !covered(tier.Coverage) {
		return ErrCoverageMismatch
	}
	return nil
}

// ClaimResolution carries the fields a reviewer must supply at approval time.
type ClaimResolution struct {
	ReviewerID        string `json:"reviewer_id"`
	CompensationCents int64  `json:"compensation_cents"`
	ResolutionDate    Date   `json:"resolution_date"`
	Comments          string `json:"comments,omitempty"`
}

// Validate enforces the approval requirements: an assigned reviewer, a
// non-negative compensation amount, and a calendar-valid resolution date.
func (r ClaimResolution) Validate() error {
	if r.ReviewerID == "" {
		return ErrIncompleteResolution
	}
	if r.CompensationCents < 0 {
		return ErrIncompleteResolution
	}
	if !r.ResolutionDate.Valid() {
		return ErrIncompleteResolution
	}
	return nil
}

// Claim is a filed incident report against an active policy.
type Claim struct {
	ID              int64        `json:"id"`
	ClaimNumber     string       `json:"claim_number"`
	UserID          int64        `json:"user_id"`
	PolicyID        int64        `json:"policy_id"`
	IncidentType    IncidentType `json:"incident_type"`
	Location        string       `json:"location"`
	Description     string       `json:"description"`
	NeedsAssistance bool         `json:"needs_assistance"`
	Status          ClaimStatus  `json:"status"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`

	// Resolution fields, set when a reviewer approves the claim.
	ReviewerID        *string    `json:"reviewer_id,omitempty"`
	CompensationCents *int64     `json:"compensation_cents,omitempty"`
	ResolvedOn        *time.Time `json:"resolved_on,omitempty"`
	Comments          string     `json:"comments,omitempty"`
}
