package rating

import (
	"math"

	"segurauto-backend/internal/domain"
)

// GenerateQuotes derives one quote per tier in catalog order. The final price
// is the base premium scaled by the tier multiplier, rounded half-up. Pure
// function: no side effects, no I/O.
func GenerateQuotes(basePremium int64) []domain.Quote {
	catalog := domain.TierCatalog()
	quotes := make([]domain.Quote, 0, len(catalog))
	for _, tier := range catalog {
		quotes = append(quotes, domain.Quote{
			Tier:        tier.ID,
			Name:        tier.Name,
			Description: tier.Description,
			BasePremium: basePremium,
			FinalPrice:  roundHalfUp(float64(basePremium) * tier.Multiplier),
			Coverage:    tier.Coverage,
		})
	}
	return quotes
}

// QuoteForTier prices a single tier; used at purchase time to recompute the
// price server-side rather than trusting the client.
func QuoteForTier(basePremium int64, tierID domain.TierID) (domain.Quote, error) {
	tier, ok := domain.TierByID(tierID)
	if !ok {
		return domain.Quote{}, domain.ErrNotFound
	}
	return domain.Quote{
		Tier:        tier.ID,
		Name:        tier.Name,
		Description: tier.Description,
		BasePremium: basePremium,
		FinalPrice:  roundHalfUp(float64(basePremium) * tier.Multiplier),
		Coverage:    tier.Coverage,
	}, nil
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
