package service

import (
	"context"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/payment"
	"segurauto-backend/internal/rating"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, phone string, birthDate *domain.Date) (*domain.User, error)
	ListUsers(ctx context.Context, page, pageSize int32) ([]domain.User, int64, error)
}

// QuoteResult is everything the quote screen renders: the decoded vehicle,
// the premium itemization, and one quote per tier in catalog order.
type QuoteResult struct {
	Vehicle   domain.VehicleAttributes `json:"vehicle"`
	Breakdown rating.PremiumBreakdown  `json:"breakdown"`
	Quotes    []domain.Quote           `json:"quotes"`
}

type QuoteService interface {
	// QuoteVehicle validates identity, runs the uniqueness guard, decodes the
	// VIN, and prices all three tiers.
	QuoteVehicle(ctx context.Context, vin, plate string) (*QuoteResult, error)
	// CheckVINUnique reports whether no persisted policy references the VIN.
	// Fails open: a persistence error logs and returns true.
	CheckVINUnique(ctx context.Context, vin string) bool
	// TierCatalog serves the display catalog, preferring the cached mirror.
	TierCatalog(ctx context.Context) []domain.CoverageTier
}

// PurchaseRequest carries everything needed to turn an accepted quote into a
// policy.
type PurchaseRequest struct {
	VIN   string              `json:"vin"`
	Plate string              `json:"plate"`
	Tier  domain.TierID       `json:"tier"`
	Card  payment.CardDetails `json:"card"`
}

type PolicyService interface {
	Purchase(ctx context.Context, userID int64, req PurchaseRequest) (*domain.Policy, error)
	GetPolicy(ctx context.Context, userID, policyID int64) (*domain.Policy, error)
	ListPolicies(ctx context.Context, userID int64) ([]domain.Policy, error)
	ListVehicles(ctx context.Context, userID int64) ([]domain.Vehicle, error)
}

// FileClaimRequest is the claim-creation form payload.
type FileClaimRequest struct {
	PolicyID        int64               `json:"policy_id"`
	IncidentType    domain.IncidentType `json:"incident_type"`
	Location        string              `json:"location"`
	Description     string              `json:"description"`
	NeedsAssistance bool                `json:"needs_assistance"`
}

type ClaimService interface {
	EligibleIncidentTypes(ctx context.Context, userID, policyID int64) ([]domain.IncidentType, error)
	FileClaim(ctx context.Context, userID int64, req FileClaimRequest) (*domain.Claim, error)
	ListMyClaims(ctx context.Context, userID int64) ([]domain.Claim, error)
	GetClaim(ctx context.Context, userID, claimID int64) (*domain.Claim, error)

	// Reviewer operations.
	ListClaims(ctx context.Context, status domain.ClaimStatus, page, pageSize int32) ([]domain.Claim, int64, error)
	TransitionClaim(ctx context.Context, claimID int64, newStatus domain.ClaimStatus, resolution *domain.ClaimResolution) (*domain.Claim, error)
}

type EmailService interface {
	SendPolicyPurchased(ctx context.Context, to, name string, policy *domain.Policy) error
	SendClaimStatusChanged(ctx context.Context, to, name string, claim *domain.Claim) error
	SendPolicyExpiryReminder(ctx context.Context, to, name string, policy *domain.Policy) error
	SendClaimReviewNudge(ctx context.Context, to string, pendingCount int) error
}
