package rating

import (
	"testing"
	"time"

	"segurauto-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestComputeBasePremium(t *testing.T) {
	t.Run("Premium make, new vehicle", func(t *testing.T) {
		// age=2 (+3000), BMW (+5000), X5 not in the SUV list (+0)
		premium, err := ComputeBasePremium(domain.VehicleAttributes{
			ModelYear: testNow.Year() - 2,
			Make:      "BMW",
			Model:     "X5",
		}, testNow)
		assert.NoError(t, err)
		assert.Equal(t, int64(9000), premium)
	})

	t.Run("Deterministic across calls", func(t *testing.T) {
		v := domain.VehicleAttributes{ModelYear: 2020, Make: "Toyota", Model: "Corolla"}
		first, err := ComputeBasePremium(v, testNow)
		assert.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := ComputeBasePremium(v, testNow)
			assert.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("Missing make", func(t *testing.T) {
		_, err := ComputeBasePremium(domain.VehicleAttributes{ModelYear: 2020, Model: "Civic"}, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidVehicleData)
	})

	t.Run("Missing model", func(t *testing.T) {
		_, err := ComputeBasePremium(domain.VehicleAttributes{ModelYear: 2020, Make: "Honda"}, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidVehicleData)
	})

	t.Run("Missing model year", func(t *testing.T) {
		_, err := ComputeBasePremium(domain.VehicleAttributes{Make: "Honda", Model: "Civic"}, testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidVehicleData)
	})
}

func TestComputeBreakdown_AgeBands(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		expected int64
	}{
		{"New, boundary", 3, 3000},
		{"Recent", 5, 1800},
		{"Recent, boundary", 7, 1800},
		{"Used", 10, 1000},
		{"Used, boundary", 15, 1000},
		{"Vintage", 16, 775},
		{"Very old", 40, 775},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ComputeBreakdown(domain.VehicleAttributes{
				ModelYear: testNow.Year() - tt.age,
				Make:      "Nissan",
				Model:     "Sentra",
			}, testNow)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, b.AgeSurcharge)
			assert.Equal(t, int64(1000)+tt.expected, b.BasePremium)
		})
	}
}

func TestComputeBreakdown_MakeSurcharge(t *testing.T) {
	tests := []struct {
		make     string
		expected int64
	}{
		{"Ferrari", 10000},
		{"LAMBORGHINI", 10000},
		{"maserati", 10000},
		{"BMW", 5000},
		{"Mercedes-Benz", 5000},
		{"audi", 5000},
		{"Lexus", 5000},
		{"Porsche", 5000},
		{"Toyota", 0},
	}

	for _, tt := range tests {
		t.Run(tt.make, func(t *testing.T) {
			b, err := ComputeBreakdown(domain.VehicleAttributes{
				ModelYear: 2020,
				Make:      tt.make,
				Model:     "Generic",
			}, testNow)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, b.MakeSurcharge)
		})
	}
}

func TestComputeBreakdown_BodySurcharge(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		expected int64
	}{
		{"SUV exact", "RAV4", 2000},
		{"SUV substring", "rav4 hybrid", 2000},
		{"SUV lowercase", "cr-v", 2000},
		{"Pickup", "F-150", 3000},
		{"Pickup substring", "Silverado 1500", 3000},
		{"Sedan", "Camry", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ComputeBreakdown(domain.VehicleAttributes{
				ModelYear: 2020,
				Make:      "Toyota",
				Model:     tt.model,
			}, testNow)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, b.BodySurcharge)
		})
	}
}
