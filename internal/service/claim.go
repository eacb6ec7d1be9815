package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
	"segurauto-backend/internal/repository"
)

type claimService struct {
	claims   repository.ClaimRepository
	policies repository.PolicyRepository
	users    repository.UserRepository
	email    EmailService
	log      *slog.Logger
}

func NewClaimService(
	claims repository.ClaimRepository,
	policies repository.PolicyRepository,
	users repository.UserRepository,
	email EmailService,
) ClaimService {
	return &claimService{
		claims:   claims,
		policies: policies,
		users:    users,
		email:    email,
		log:      logger.WithService("claim"),
	}
}

// ownedActivePolicy loads the policy and checks ownership and expiry in that
// order, so a foreign policy reads as not found rather than expired.
func (s *claimService) ownedActivePolicy(ctx context.Context, userID, policyID int64, now time.Time) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if policy.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if !policy.Active(now) {
		return nil, domain.ErrPolicyExpired
	}
	return policy, nil
}

func (s *claimService) EligibleIncidentTypes(ctx context.Context, userID, policyID int64) ([]domain.IncidentType, error) {
	policy, err := s.ownedActivePolicy(ctx, userID, policyID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	tier, ok := domain.TierByID(policy.Tier)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.EligibleIncidentTypes(tier), nil
}

func (s *claimService) FileClaim(ctx context.Context, userID int64, req FileClaimRequest) (*domain.Claim, error) {
	now := time.Now().UTC()
	policy, err := s.ownedActivePolicy(ctx, userID, req.PolicyID, now)
	if err != nil {
		return nil, err
	}
	tier, ok := domain.TierByID(policy.Tier)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := domain.IncidentCoveredBy(tier, req.IncidentType); err != nil {
		return nil, err
	}

	claim := &domain.Claim{
		ClaimNumber:     newClaimNumber(),
		UserID:          userID,
		PolicyID:        policy.ID,
		IncidentType:    req.IncidentType,
		Location:        req.Location,
		Description:     req.Description,
		NeedsAssistance: req.NeedsAssistance,
		Status:          domain.ClaimStatusPending,
		CreatedOn:       now,
		UpdatedOn:       now,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "claim filed",
		"claim_number", claim.ClaimNumber,
		"policy_id", policy.ID,
		"incident_type", claim.IncidentType)
	return claim, nil
}

func (s *claimService) ListMyClaims(ctx context.Context, userID int64) ([]domain.Claim, error) {
	return s.claims.ListByUser(ctx, userID)
}

func (s *claimService) GetClaim(ctx context.Context, userID, claimID int64) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return claim, nil
}

func (s *claimService) ListClaims(ctx context.Context, status domain.ClaimStatus, page, pageSize int32) ([]domain.Claim, int64, error) {
	return s.claims.List(ctx, status, page, pageSize)
}

// TransitionClaim moves a claim through the review lifecycle. Approval
// additionally requires a complete resolution: an assigned reviewer, the
// compensation amount, and a valid resolution date. Resolution payloads on
// any other transition are ignored.
func (s *claimService) TransitionClaim(ctx context.Context, claimID int64, newStatus domain.ClaimStatus, resolution *domain.ClaimResolution) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(claim.Status, newStatus); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if newStatus == domain.ClaimStatusApproved {
		if resolution == nil {
			return nil, domain.ErrIncompleteResolution
		}
		if err := resolution.Validate(); err != nil {
			return nil, err
		}
		resolvedOn := resolution.ResolutionDate.Time()
		claim.ReviewerID = &resolution.ReviewerID
		claim.CompensationCents = &resolution.CompensationCents
		claim.ResolvedOn = &resolvedOn
		claim.Comments = resolution.Comments
	}

	claim.Status = newStatus
	claim.UpdatedOn = now
	if err := s.claims.Update(ctx, claim); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "claim transitioned",
		"claim_number", claim.ClaimNumber,
		"status", claim.Status)

	s.notifyStatusChange(ctx, claim)
	return claim, nil
}

// notifyStatusChange emails the claimant best effort.
func (s *claimService) notifyStatusChange(ctx context.Context, claim *domain.Claim) {
	user, err := s.users.GetByID(ctx, claim.UserID)
	if err != nil {
		s.log.ErrorContext(ctx, "claim status email skipped, user lookup failed", "user_id", claim.UserID, "error", err)
		return
	}
	if err := s.email.SendClaimStatusChanged(ctx, user.Email, user.Name, claim); err != nil {
		s.log.ErrorContext(ctx, "claim status email failed", "claim_number", claim.ClaimNumber, "error", err)
	}
}

func newClaimNumber() string {
	return fmt.Sprintf("CLM-%s", strings.ToUpper(uuid.NewString()[:8]))
}
