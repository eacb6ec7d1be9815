package postgres

import (
	"database/sql"
	"fmt"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.PolicyRepository
	repository.ClaimRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		UserRepository:    NewUserRepository(db),
		VehicleRepository: NewVehicleRepository(db),
		PolicyRepository:  NewPolicyRepository(db),
		ClaimRepository:   NewClaimRepository(db),
	}
}

// persistenceErr classifies a driver or connectivity failure the caller
// cannot act on. sql.ErrNoRows and constraint violations are mapped to their
// own sentinels before this runs.
func persistenceErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
}
