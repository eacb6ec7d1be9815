package rating

import (
	"strings"
	"time"

	"segurauto-backend/internal/domain"
)

// Base premium constants, in whole currency units. The age bands are
// non-overlapping and first match wins.
const (
	baseFloor = 1000

	ageNewSurcharge     = 3000 // age <= 3
	ageRecentSurcharge  = 1800 // age <= 7
	ageUsedSurcharge    = 1000 // age <= 15
	ageVintageSurcharge = 775  // older vehicles carry failure risk

	sportsMakeSurcharge  = 10000
	premiumMakeSurcharge = 5000

	suvSurcharge    = 2000
	pickupSurcharge = 3000
)

var sportsMakes = []string{"FERRARI", "LAMBORGHINI", "MASERATI"}

var premiumMakes = []string{"BMW", "MERCEDES-BENZ", "AUDI", "LEXUS", "PORSCHE"}

// Body style is inferred from well-known model names; the decoder does not
// return a body class for every VIN.
var suvModels = []string{"RAV4", "CR-V", "ROGUE", "EXPLORER", "TAHOE"}

var pickupModels = []string{"F-150", "SILVERADO", "RAM", "TUNDRA"}

// PremiumBreakdown itemizes the base premium for display and audit.
type PremiumBreakdown struct {
	Floor         int64 `json:"floor"`
	AgeSurcharge  int64 `json:"age_surcharge"`
	MakeSurcharge int64 `json:"make_surcharge"`
	BodySurcharge int64 `json:"body_surcharge"`
	BasePremium   int64 `json:"base_premium"`
}

// ComputeBasePremium prices a vehicle from its decoded attributes. It is a
// deterministic pure function of vehicle age, make, and inferred body style.
func ComputeBasePremium(vehicle domain.VehicleAttributes, now time.Time) (int64, error) {
	b, err := ComputeBreakdown(vehicle, now)
	if err != nil {
		return 0, err
	}
	return b.BasePremium, nil
}

// ComputeBreakdown is ComputeBasePremium with the per-rule itemization.
func ComputeBreakdown(vehicle domain.VehicleAttributes, now time.Time) (PremiumBreakdown, error) {
	if vehicle.ModelYear == 0 || vehicle.Make == "" || vehicle.Model == "" {
		return PremiumBreakdown{}, domain.ErrInvalidVehicleData
	}

	b := PremiumBreakdown{Floor: baseFloor}

	age := now.Year() - vehicle.ModelYear
	switch {
	case age <= 3:
		b.AgeSurcharge = ageNewSurcharge
	case age <= 7:
		b.AgeSurcharge = ageRecentSurcharge
	case age <= 15:
		b.AgeSurcharge = ageUsedSurcharge
	default:
		b.AgeSurcharge = ageVintageSurcharge
	}

	// The sports-brand check wins if a make would somehow match both lists.
	make := strings.ToUpper(vehicle.Make)
	if containsExact(sportsMakes, make) {
		b.MakeSurcharge = sportsMakeSurcharge
	} else if containsExact(premiumMakes, make) {
		b.MakeSurcharge = premiumMakeSurcharge
	}

	// SUV check first; the two body checks are mutually exclusive.
	model := strings.ToUpper(vehicle.Model)
	if containsSubstring(suvModels, model) {
		b.BodySurcharge = suvSurcharge
	} else if containsSubstring(pickupModels, model) {
		b.BodySurcharge = pickupSurcharge
	}

	b.BasePremium = b.Floor + b.AgeSurcharge + b.MakeSurcharge + b.BodySurcharge
	return b, nil
}

func containsExact(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsSubstring(list []string, v string) bool {
	for _, item := range list {
		if strings.Contains(v, item) {
			return true
		}
	}
	return false
}
