package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/service"
)

type PolicyHandler struct {
	policies service.PolicyService
	validate *validator.Validate
}

func NewPolicyHandler(policies service.PolicyService, validate *validator.Validate) *PolicyHandler {
	return &PolicyHandler{policies: policies, validate: validate}
}

type purchaseRequest struct {
	VIN   string `json:"vin" validate:"required,len=17,alphanum"`
	Plate string `json:"plate" validate:"required,min=6,max=7"`
	Tier  string `json:"tier" validate:"required,oneof=CIVIL_LIABILITY BASIC COMPREHENSIVE"`
	Card  struct {
		Number   string `json:"number" validate:"required,credit_card"`
		Holder   string `json:"holder" validate:"required"`
		ExpiryMM int    `json:"expiry_mm" validate:"required,min=1,max=12"`
		ExpiryYY int    `json:"expiry_yy" validate:"required,min=24,max=99"`
		CVV      string `json:"cvv" validate:"required,len=3,numeric"`
	} `json:"card"`
}

func (h *PolicyHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, err)
		return
	}

	svcReq := service.PurchaseRequest{
		VIN:   req.VIN,
		Plate: req.Plate,
		Tier:  domain.TierID(req.Tier),
	}
	svcReq.Card.Number = req.Card.Number
	svcReq.Card.Holder = req.Card.Holder
	svcReq.Card.ExpiryMM = req.Card.ExpiryMM
	svcReq.Card.ExpiryYY = req.Card.ExpiryYY
	svcReq.Card.CVV = req.Card.CVV

	policy, err := h.policies.Purchase(r.Context(), principal.UserID, svcReq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, policy)
}

func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	policies, err := h.policies.ListPolicies(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policies)
}

func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid policy id"})
		return
	}

	policy, err := h.policies.GetPolicy(r.Context(), principal.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policy)
}

// ListVehicles returns the caller's insured vehicles.
func (h *PolicyHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	vehicles, err := h.policies.ListVehicles(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
