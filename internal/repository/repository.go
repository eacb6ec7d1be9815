package repository

import (
	"context"
	"time"

	"segurauto-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, page, pageSize int32) ([]domain.User, int64, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error)
}

type PolicyRepository interface {
	// CreateWithVehicle persists the vehicle and policy in a single
	// transaction. The vehicles table carries a unique index on VIN, so a
	// concurrent purchase of the same VIN fails here with ErrDuplicateVIN
	// instead of racing the pre-purchase uniqueness guard.
	CreateWithVehicle(ctx context.Context, vehicle *domain.Vehicle, policy *domain.Policy) error
	GetByID(ctx context.Context, id int64) (*domain.Policy, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Policy, error)
	// ListAllVINs returns the VINs of every persisted policy's vehicle across
	// all users, expired policies included.
	ListAllVINs(ctx context.Context) ([]string, error)
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Policy, error)
}

type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	GetByID(ctx context.Context, id int64) (*domain.Claim, error)
	Update(ctx context.Context, claim *domain.Claim) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Claim, error)
	List(ctx context.Context, status domain.ClaimStatus, page, pageSize int32) ([]domain.Claim, int64, error)
	ListPendingSince(ctx context.Context, olderThan time.Time) ([]domain.Claim, error)
}
