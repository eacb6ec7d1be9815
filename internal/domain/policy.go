package domain

import "time"

// PolicyTermYears is the fixed policy term: expiry is purchase + 1 year exact.
const PolicyTermYears = 1

// Policy is created when a quote is accepted and payment succeeds. At most one
// non-expired policy may reference a given VIN across the entire system; the
// vehicles table additionally carries a unique index on VIN so two concurrent
// purchases cannot both land.
type Policy struct {
	ID           int64     `json:"id"`
	PolicyNumber string    `json:"policy_number"`
	UserID       int64     `json:"user_id"`
	VehicleID    int64     `json:"vehicle_id"`
	Tier         TierID    `json:"tier"`
	FinalPrice   int64     `json:"final_price"`
	PurchasedOn  time.Time `json:"purchased_on"`
	ExpiresOn    time.Time `json:"expires_on"`

	// Populated on detail reads.
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// ExpiryFor computes the expiry timestamp for a policy purchased at the given
// instant.
func ExpiryFor(purchasedOn time.Time) time.Time {
	return purchasedOn.AddDate(PolicyTermYears, 0, 0)
}

// Active reports whether the policy has not yet expired at the given instant.
func (p *Policy) Active(now time.Time) bool {
	return now.Before(p.ExpiresOn)
}
