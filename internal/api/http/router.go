package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Quote  *QuoteHandler
	Policy *PolicyHandler
	Claim  *ClaimHandler
}

// NewValidator builds the shared request validator.
func NewValidator() *validator.Validate {
	return validator.New()
}

// NewRouter assembles the /api/v1 surface.
func NewRouter(h Handlers, authMW *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/health", handleHealth).Methods("GET")
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")
	api.HandleFunc("/tiers", h.Quote.Catalog).Methods("GET")

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(authMW.RequireAuth)
	authed.HandleFunc("/profile", h.User.GetProfile).Methods("GET")
	authed.HandleFunc("/profile", h.User.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/quotes", h.Quote.Quote).Methods("POST")
	authed.HandleFunc("/policies", h.Policy.Purchase).Methods("POST")
	authed.HandleFunc("/policies", h.Policy.List).Methods("GET")
	authed.HandleFunc("/policies/{id:[0-9]+}", h.Policy.Get).Methods("GET")
	authed.HandleFunc("/vehicles", h.Policy.ListVehicles).Methods("GET")
	authed.HandleFunc("/policies/{id:[0-9]+}/eligible-incidents", h.Claim.EligibleIncidents).Methods("GET")
	authed.HandleFunc("/claims", h.Claim.File).Methods("POST")
	authed.HandleFunc("/claims", h.Claim.ListMine).Methods("GET")
	authed.HandleFunc("/claims/{id:[0-9]+}", h.Claim.Get).Methods("GET")

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.RequireAdmin)
	admin.HandleFunc("/claims", h.Claim.ListAll).Methods("GET")
	admin.HandleFunc("/claims/{id:[0-9]+}/status", h.Claim.Transition).Methods("PUT")
	admin.HandleFunc("/users", h.User.ListAll).Methods("GET")

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
