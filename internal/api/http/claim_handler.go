package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/service"
)

type ClaimHandler struct {
	claims   service.ClaimService
	validate *validator.Validate
}

func NewClaimHandler(claims service.ClaimService, validate *validator.Validate) *ClaimHandler {
	return &ClaimHandler{claims: claims, validate: validate}
}

type fileClaimRequest struct {
	PolicyID        int64  `json:"policy_id" validate:"required,min=1"`
	IncidentType    string `json:"incident_type" validate:"required,oneof=COLLISION ROADSIDE GLASS_BREAKAGE THEFT THIRD_PARTY_DAMAGE"`
	Location        string `json:"location" validate:"required,max=300"`
	Description     string `json:"description" validate:"required,max=2000"`
	NeedsAssistance bool   `json:"needs_assistance"`
}

type transitionRequest struct {
	Status     string                  `json:"status" validate:"required,oneof=IN_REVIEW APPROVED REJECTED COMPLETED"`
	Resolution *domain.ClaimResolution `json:"resolution,omitempty"`
}

func (h *ClaimHandler) File(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req fileClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, err)
		return
	}

	claim, err := h.claims.FileClaim(r.Context(), principal.UserID, service.FileClaimRequest{
		PolicyID:        req.PolicyID,
		IncidentType:    domain.IncidentType(req.IncidentType),
		Location:        req.Location,
		Description:     req.Description,
		NeedsAssistance: req.NeedsAssistance,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

func (h *ClaimHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	claims, err := h.claims.ListMyClaims(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (h *ClaimHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid claim id"})
		return
	}

	claim, err := h.claims.GetClaim(r.Context(), principal.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

// EligibleIncidents lists the incident types the policy's tier can claim.
func (h *ClaimHandler) EligibleIncidents(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	policyID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid policy id"})
		return
	}

	eligible, err := h.claims.EligibleIncidentTypes(r.Context(), principal.UserID, policyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eligible)
}

type pagedClaimsResponse struct {
	Claims []domain.Claim `json:"claims"`
	Total  int64          `json:"total"`
}

// ListAll is the reviewer queue, filterable by status.
func (h *ClaimHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := domain.ClaimStatus(r.URL.Query().Get("status"))
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	claims, total, err := h.claims.ListClaims(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedClaimsResponse{Claims: claims, Total: total})
}

func (h *ClaimHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid claim id"})
		return
	}

	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, err)
		return
	}

	claim, err := h.claims.TransitionClaim(r.Context(), id, domain.ClaimStatus(req.Status), req.Resolution)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
