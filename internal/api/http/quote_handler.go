package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"segurauto-backend/internal/service"
)

type QuoteHandler struct {
	quotes   service.QuoteService
	validate *validator.Validate
}

func NewQuoteHandler(quotes service.QuoteService, validate *validator.Validate) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, validate: validate}
}

type quoteRequest struct {
	VIN   string `json:"vin" validate:"required,len=17,alphanum"`
	Plate string `json:"plate" validate:"required,min=6,max=7"`
}

// Quote prices all three tiers for a vehicle. Requires auth but creates
// nothing; quotes are never persisted.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.quotes.QuoteVehicle(r.Context(), req.VIN, req.Plate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Catalog serves the three coverage tiers. Public endpoint.
func (h *QuoteHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quotes.TierCatalog(r.Context()))
}
