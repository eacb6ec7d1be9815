package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/service"
)

type UserHandler struct {
	users    service.UserService
	validate *validator.Validate
}

func NewUserHandler(users service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{users: users, validate: validate}
}

type updateProfileRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	user, err := h.users.GetProfile(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, err)
		return
	}

	var birthDate *domain.Date
	if req.BirthDate != "" {
		d, err := domain.ParseDate(req.BirthDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid birth date"})
			return
		}
		birthDate = &d
	}

	user, err := h.users.UpdateProfile(r.Context(), principal.UserID, req.Name, req.Phone, birthDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type pagedUsersResponse struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
}

// ListAll is the admin user directory.
func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	users, total, err := h.users.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedUsersResponse{Users: users, Total: total})
}
