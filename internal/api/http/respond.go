package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain sentinels onto HTTP status codes. Anything unmapped
// is a 500 with a generic body so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidVehicleData),
		errors.Is(err, domain.ErrInvalidPlateFormat),
		errors.Is(err, domain.ErrInvalidVIN),
		errors.Is(err, domain.ErrIncompleteResolution):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDuplicateVIN),
		errors.Is(err, domain.ErrEmailAlreadyRegistered):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrCoverageMismatch),
		errors.Is(err, domain.ErrPolicyExpired),
		errors.Is(err, domain.ErrInvalidStatusTransition):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrPaymentDeclined):
		status, message = http.StatusPaymentRequired, err.Error()
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		status, message = http.StatusServiceUnavailable, err.Error()
	default:
		logger.Error("unhandled error in http layer", "error", err)
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
