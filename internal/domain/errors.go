package domain

import "errors"

// Sentinel errors returned by the engine and services. Handlers map these to
// HTTP status codes; repositories map driver failures onto
// ErrPersistenceUnavailable.
var (
	ErrInvalidVehicleData      = errors.New("invalid vehicle data")
	ErrDuplicateVIN            = errors.New("vin already registered to a policy")
	ErrInvalidPlateFormat      = errors.New("invalid plate format")
	ErrInvalidVIN              = errors.New("vin must be exactly 17 characters")
	ErrCoverageMismatch        = errors.New("incident type not covered by policy tier")
	ErrIncompleteResolution    = errors.New("claim resolution is missing required fields")
	ErrInvalidStatusTransition = errors.New("invalid claim status transition")
	ErrPersistenceUnavailable  = errors.New("persistence layer unavailable")
	ErrPolicyExpired           = errors.New("policy is expired")
	ErrPaymentDeclined         = errors.New("payment was declined")
	ErrNotFound                = errors.New("not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrEmailAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid email or password")
)
