package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// plateRE matches uppercase alphanumeric plates of 6 or 7 characters with no
// separators. Lowercase input is rejected, not normalized.
var plateRE = regexp.MustCompile(`^[A-Z0-9]{6,7}$`)

const vinLength = 17

// VehicleAttributes is the decoded vehicle identity used as pricing and
// eligibility input. It is immutable once a policy has been issued against it.
type VehicleAttributes struct {
	ModelYear         int    `json:"model_year"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	Trim              string `json:"trim,omitempty"`
	TransmissionStyle string `json:"transmission_style,omitempty"`
	VIN               string `json:"vin"`
	Plate             string `json:"plate"`
}

// Vehicle is a persisted vehicle attached to a policy.
type Vehicle struct {
	ID         int64             `json:"id"`
	OwnerID    int64             `json:"owner_id"`
	Attributes VehicleAttributes `json:"attributes"`
	CreatedOn  time.Time         `json:"created_on"`
}

// ValidPlate reports whether text is an acceptable plate: 6 or 7 uppercase
// alphanumeric characters, nothing else.
func ValidPlate(text string) bool {
	return plateRE.MatchString(text)
}

// ValidVIN checks only the length; format verification is delegated to the
// external decoder.
func ValidVIN(text string) bool {
	return len(text) == vinLength
}

// ParseModelYear converts the decoder's raw model-year string. The decoder
// returns empty fields for VINs it cannot resolve, which surfaces here as
// ErrInvalidVehicleData.
func ParseModelYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidVehicleData
	}
	return year, nil
}
