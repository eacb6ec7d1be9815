package postgres

import (
	"context"
	"database/sql"
	"errors"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, owner_id, vin, plate, model_year, make, model, COALESCE(trim, ''), COALESCE(transmission_style, ''), created_on`

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v := &domain.Vehicle{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.OwnerID, &v.Attributes.VIN, &v.Attributes.Plate, &v.Attributes.ModelYear,
		&v.Attributes.Make, &v.Attributes.Model, &v.Attributes.Trim, &v.Attributes.TransmissionStyle, &v.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, persistenceErr(err)
	}
	return v, nil
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Attributes.VIN, &v.Attributes.Plate, &v.Attributes.ModelYear,
			&v.Attributes.Make, &v.Attributes.Model, &v.Attributes.Trim, &v.Attributes.TransmissionStyle, &v.CreatedOn); err != nil {
			return nil, persistenceErr(err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr(err)
	}
	return vehicles, nil
}
