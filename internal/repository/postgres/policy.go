package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/repository"

	"github.com/lib/pq"
)

type policyRepository struct {
	db *sql.DB
}

func NewPolicyRepository(db *sql.DB) repository.PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) CreateWithVehicle(ctx context.Context, v *domain.Vehicle, p *domain.Policy) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceErr(err)
	}
	defer tx.Rollback()

	vehicleQuery := `INSERT INTO vehicles (owner_id, vin, plate, model_year, make, model, trim, transmission_style, created_on)
	                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err = tx.QueryRowContext(ctx, vehicleQuery,
		v.OwnerID, v.Attributes.VIN, v.Attributes.Plate, v.Attributes.ModelYear,
		v.Attributes.Make, v.Attributes.Model, v.Attributes.Trim, v.Attributes.TransmissionStyle, v.CreatedOn,
	).Scan(&v.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrDuplicateVIN
		}
		return persistenceErr(err)
	}

	p.VehicleID = v.ID
	policyQuery := `INSERT INTO policies (policy_number, user_id, vehicle_id, tier, final_price, purchased_on, expires_on)
	                VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRowContext(ctx, policyQuery,
		p.PolicyNumber, p.UserID, p.VehicleID, p.Tier, p.FinalPrice, p.PurchasedOn, p.ExpiresOn,
	).Scan(&p.ID)
	if err != nil {
		return persistenceErr(err)
	}

	if err := tx.Commit(); err != nil {
		return persistenceErr(err)
	}
	return nil
}

const policyColumns = `p.id, p.policy_number, p.user_id, p.vehicle_id, p.tier, p.final_price, p.purchased_on, p.expires_on`

func (r *policyRepository) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	query := `SELECT ` + policyColumns + `, v.id, v.owner_id, v.vin, v.plate, v.model_year, v.make, v.model, COALESCE(v.trim, ''), COALESCE(v.transmission_style, ''), v.created_on
	          FROM policies p JOIN vehicles v ON v.id = p.vehicle_id WHERE p.id = $1`
	p := &domain.Policy{Vehicle: &domain.Vehicle{}}
	v := p.Vehicle
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.PolicyNumber, &p.UserID, &p.VehicleID, &p.Tier, &p.FinalPrice, &p.PurchasedOn, &p.ExpiresOn,
		&v.ID, &v.OwnerID, &v.Attributes.VIN, &v.Attributes.Plate, &v.Attributes.ModelYear,
		&v.Attributes.Make, &v.Attributes.Model, &v.Attributes.Trim, &v.Attributes.TransmissionStyle, &v.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistenceErr(err)
	}
	return p, nil
}

func (r *policyRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + `, v.id, v.owner_id, v.vin, v.plate, v.model_year, v.make, v.model, COALESCE(v.trim, ''), COALESCE(v.transmission_style, ''), v.created_on
	          FROM policies p JOIN vehicles v ON v.id = p.vehicle_id
	          WHERE p.user_id = $1 ORDER BY p.purchased_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	defer rows.Close()
	return scanPolicies(rows)
}

// ListAllVINs feeds the uniqueness guard: every policy's vehicle VIN across
// all users, with no expiry filter. A previously insured VIN stays blocked
// even after its policy expires.
func (r *policyRepository) ListAllVINs(ctx context.Context) ([]string, error) {
	query := `SELECT v.vin FROM policies p JOIN vehicles v ON v.id = p.vehicle_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, persistenceErr(err)
	}
	defer rows.Close()

	var vins []string
	for rows.Next() {
		var vin string
		if err := rows.Scan(&vin); err != nil {
			return nil, persistenceErr(err)
		}
		vins = append(vins, vin)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr(err)
	}
	return vins, nil
}

func (r *policyRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + `, v.id, v.owner_id, v.vin, v.plate, v.model_year, v.make, v.model, COALESCE(v.trim, ''), COALESCE(v.transmission_style, ''), v.created_on
	          FROM policies p JOIN vehicles v ON v.id = p.vehicle_id
	          WHERE p.expires_on >= $1 AND p.expires_on < $2 ORDER BY p.expires_on`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, persistenceErr(err)
	}
	defer rows.Close()
	return scanPolicies(rows)
}

func scanPolicies(rows *sql.Rows) ([]domain.Policy, error) {
	var policies []domain.Policy
	for rows.Next() {
		p := domain.Policy{Vehicle: &domain.Vehicle{}}
		v := p.Vehicle
		if err := rows.Scan(
			&p.ID, &p.PolicyNumber, &p.UserID, &p.VehicleID, &p.Tier, &p.FinalPrice, &p.PurchasedOn, &p.ExpiresOn,
			&v.ID, &v.OwnerID, &v.Attributes.VIN, &v.Attributes.Plate, &v.Attributes.ModelYear,
			&v.Attributes.Make, &v.Attributes.Model, &v.Attributes.Trim, &v.Attributes.TransmissionStyle, &v.CreatedOn); err != nil {
			return nil, persistenceErr(err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr(err)
	}
	return policies, nil
}
