package postgres_test

import (
	"context"
	"testing"
	"time"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPolicyRepository_CreateWithVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPolicyRepository(db)
	ctx := context.Background()

	newInput := func() (*domain.Vehicle, *domain.Policy) {
		purchased := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
		vehicle := &domain.Vehicle{
			OwnerID: 7,
			Attributes: domain.VehicleAttributes{
				VIN:       "1HGCM82633A123456",
				Plate:     "ABC1234",
				ModelYear: 2024,
				Make:      "BMW",
				Model:     "X5",
			},
			CreatedOn: purchased,
		}
		policy := &domain.Policy{
			PolicyNumber: "POL-TEST",
			UserID:       7,
			Tier:         domain.TierBasic,
			FinalPrice:   13500,
			PurchasedOn:  purchased,
			ExpiresOn:    domain.ExpiryFor(purchased),
		}
		return vehicle, policy
	}

	t.Run("Success", func(t *testing.T) {
		vehicle, policy := newInput()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO vehicles").
			WithArgs(int64(7), "1HGCM82633A123456", "ABC1234", 2024, "BMW", "X5", "", "", vehicle.CreatedOn).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
		mock.ExpectQuery("INSERT INTO policies").
			WithArgs("POL-TEST", int64(7), int64(11), "BASIC", int64(13500), policy.PurchasedOn, policy.ExpiresOn).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
		mock.ExpectCommit()

		err := repo.CreateWithVehicle(ctx, vehicle, policy)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), vehicle.ID)
		assert.Equal(t, int64(11), policy.VehicleID)
		assert.Equal(t, int64(21), policy.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate VIN maps to ErrDuplicateVIN", func(t *testing.T) {
		vehicle, policy := newInput()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO vehicles").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreateWithVehicle(ctx, vehicle, policy)
		assert.ErrorIs(t, err, domain.ErrDuplicateVIN)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPolicyRepository_ListAllVINs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPolicyRepository(db)
	ctx := context.Background()

	t.Run("Includes expired policies", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"vin"}).
			AddRow("1HGCM82633A123456").
			AddRow("5YJ3E1EA7KF000001")

		// No expiry filter in the query: expired policies still block a VIN.
		mock.ExpectQuery("SELECT v.vin FROM policies p JOIN vehicles v").
			WillReturnRows(rows)

		vins, err := repo.ListAllVINs(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"1HGCM82633A123456", "5YJ3E1EA7KF000001"}, vins)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Driver failure maps to ErrPersistenceUnavailable", func(t *testing.T) {
		mock.ExpectQuery("SELECT v.vin FROM policies p JOIN vehicles v").
			WillReturnError(assert.AnError)

		_, err := repo.ListAllVINs(ctx)
		assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
	})
}

func TestPolicyRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewPolicyRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		purchased := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{
			"id", "policy_number", "user_id", "vehicle_id", "tier", "final_price", "purchased_on", "expires_on",
			"v_id", "owner_id", "vin", "plate", "model_year", "make", "model", "trim", "transmission_style", "created_on",
		}).AddRow(
			int64(21), "POL-TEST", int64(7), int64(11), "BASIC", int64(13500), purchased, domain.ExpiryFor(purchased),
			int64(11), int64(7), "1HGCM82633A123456", "ABC1234", 2024, "BMW", "X5", "", "", purchased,
		)

		mock.ExpectQuery("SELECT (.+) FROM policies p JOIN vehicles v ON v.id = p.vehicle_id WHERE p.id = \\$1").
			WithArgs(int64(21)).
			WillReturnRows(rows)

		policy, err := repo.GetByID(ctx, 21)
		assert.NoError(t, err)
		assert.Equal(t, domain.TierBasic, policy.Tier)
		assert.NotNil(t, policy.Vehicle)
		assert.Equal(t, "1HGCM82633A123456", policy.Vehicle.Attributes.VIN)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM policies p JOIN vehicles v ON v.id = p.vehicle_id WHERE p.id = \\$1").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Driver failure maps to ErrPersistenceUnavailable", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM policies p JOIN vehicles v ON v.id = p.vehicle_id WHERE p.id = \\$1").
			WithArgs(int64(21)).
			WillReturnError(assert.AnError)

		_, err := repo.GetByID(ctx, 21)
		assert.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
	})
}
