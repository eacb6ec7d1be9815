package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"segurauto-backend/internal/cache"
	"segurauto-backend/internal/decoder"
	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
	"segurauto-backend/internal/rating"
	"segurauto-backend/internal/repository"
)

type quoteService struct {
	policies repository.PolicyRepository
	decoder  decoder.VehicleDecoder
	cache    *cache.Cache
	log      *slog.Logger
}

func NewQuoteService(policies repository.PolicyRepository, dec decoder.VehicleDecoder, c *cache.Cache) QuoteService {
	return &quoteService{
		policies: policies,
		decoder:  dec,
		cache:    c,
		log:      logger.WithService("quote"),
	}
}

func (s *quoteService) QuoteVehicle(ctx context.Context, vin, plate string) (*QuoteResult, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	vin = strings.ToUpper(strings.TrimSpace(vin))

	if !domain.ValidPlate(plate) {
		return nil, domain.ErrInvalidPlateFormat
	}
	if !domain.ValidVIN(vin) {
		return nil, domain.ErrInvalidVIN
	}
	if !s.CheckVINUnique(ctx, vin) {
		return nil, domain.ErrDuplicateVIN
	}

	attrs, err := s.decoder.Decode(ctx, vin)
	if err != nil {
		return nil, err
	}
	attrs.Plate = plate

	now := time.Now().UTC()
	breakdown, err := rating.ComputeBreakdown(*attrs, now)
	if err != nil {
		return nil, err
	}

	return &QuoteResult{
		Vehicle:   *attrs,
		Breakdown: breakdown,
		Quotes:    rating.GenerateQuotes(breakdown.BasePremium),
	}, nil
}

// CheckVINUnique scans every VIN referenced by a persisted policy, expired
// ones included. A vehicle that was ever insured here stays blocked. On a
// persistence error the guard logs and answers "unique"; the database unique
// index is the backstop for anything that slips through.
func (s *quoteService) CheckVINUnique(ctx context.Context, vin string) bool {
	return !vinAlreadyInsured(ctx, s.policies, s.log, vin)
}

// vinAlreadyInsured is the shared uniqueness guard behind quoting and
// purchase. Fail-open: a failed scan reports the VIN as unused and the
// vehicles unique index catches any duplicate at insert time.
func vinAlreadyInsured(ctx context.Context, policies repository.PolicyRepository, log *slog.Logger, vin string) bool {
	vins, err := policies.ListAllVINs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "vin uniqueness scan failed, treating vin as unused", "error", err)
		return false
	}
	for _, existing := range vins {
		if strings.EqualFold(existing, vin) {
			return true
		}
	}
	return false
}

func (s *quoteService) TierCatalog(ctx context.Context) []domain.CoverageTier {
	if s.cache != nil {
		if tiers, err := s.cache.GetTierCatalog(ctx); err == nil {
			return tiers
		}
	}
	return domain.TierCatalog()
}
