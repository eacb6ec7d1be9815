package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"segurauto-backend/internal/decoder"
	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
	"segurauto-backend/internal/payment"
	"segurauto-backend/internal/rating"
	"segurauto-backend/internal/repository"
)

type policyService struct {
	policies repository.PolicyRepository
	vehicles repository.VehicleRepository
	users    repository.UserRepository
	decoder  decoder.VehicleDecoder
	payments payment.Processor
	email    EmailService
	log      *slog.Logger
}

func NewPolicyService(
	policies repository.PolicyRepository,
	vehicles repository.VehicleRepository,
	users repository.UserRepository,
	dec decoder.VehicleDecoder,
	payments payment.Processor,
	email EmailService,
) PolicyService {
	return &policyService{
		policies: policies,
		vehicles: vehicles,
		users:    users,
		decoder:  dec,
		payments: payments,
		email:    email,
		log:      logger.WithService("policy"),
	}
}

// Purchase turns an accepted quote into a policy. The price is recomputed
// server-side from the decoded vehicle; the client-facing quote is display
// only. The uniqueness guard runs again before the card is charged so an
// already-insured VIN is rejected without taking payment; the vehicles
// unique index still backstops a race, surfacing ErrDuplicateVIN after the
// charge with nothing persisted.
func (s *policyService) Purchase(ctx context.Context, userID int64, req PurchaseRequest) (*domain.Policy, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	vin := strings.ToUpper(strings.TrimSpace(req.VIN))

	if !domain.ValidPlate(plate) {
		return nil, domain.ErrInvalidPlateFormat
	}
	if !domain.ValidVIN(vin) {
		return nil, domain.ErrInvalidVIN
	}
	if vinAlreadyInsured(ctx, s.policies, s.log, vin) {
		return nil, domain.ErrDuplicateVIN
	}
	attrs, err := s.decoder.Decode(ctx, vin)
	if err != nil {
		return nil, err
	}
	attrs.Plate = plate

	now := time.Now().UTC()
	basePremium, err := rating.ComputeBasePremium(*attrs, now)
	if err != nil {
		return nil, err
	}
	quote, err := rating.QuoteForTier(basePremium, req.Tier)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Charge(ctx, quote.FinalPrice, req.Card); err != nil {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		OwnerID:    userID,
		Attributes: *attrs,
		CreatedOn:  now,
	}
	policy := &domain.Policy{
		PolicyNumber: newPolicyNumber(),
		UserID:       userID,
		Tier:         quote.Tier,
		FinalPrice:   quote.FinalPrice,
		PurchasedOn:  now,
		ExpiresOn:    domain.ExpiryFor(now),
	}
	if err := s.policies.CreateWithVehicle(ctx, vehicle, policy); err != nil {
		return nil, err
	}
	policy.Vehicle = vehicle

	s.log.InfoContext(ctx, "policy purchased",
		"policy_number", policy.PolicyNumber,
		"user_id", userID,
		"tier", policy.Tier,
		"final_price", policy.FinalPrice)

	s.notifyPurchase(ctx, userID, policy)
	return policy, nil
}

// notifyPurchase sends the confirmation email best effort. A delivery failure
// never rolls back a paid policy.
func (s *policyService) notifyPurchase(ctx context.Context, userID int64, policy *domain.Policy) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "purchase confirmation skipped, user lookup failed", "user_id", userID, "error", err)
		return
	}
	if err := s.email.SendPolicyPurchased(ctx, user.Email, user.Name, policy); err != nil {
		s.log.ErrorContext(ctx, "purchase confirmation email failed", "policy_number", policy.PolicyNumber, "error", err)
	}
}

func (s *policyService) GetPolicy(ctx context.Context, userID, policyID int64) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if policy.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return policy, nil
}

func (s *policyService) ListPolicies(ctx context.Context, userID int64) ([]domain.Policy, error) {
	return s.policies.ListByUser(ctx, userID)
}

func (s *policyService) ListVehicles(ctx context.Context, userID int64) ([]domain.Vehicle, error) {
	return s.vehicles.ListByOwner(ctx, userID)
}

func newPolicyNumber() string {
	return fmt.Sprintf("POL-%s", strings.ToUpper(uuid.NewString()[:8]))
}
