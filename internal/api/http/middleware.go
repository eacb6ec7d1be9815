package http

import (
	"net/http"
	"strings"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
	"segurauto-backend/internal/repository"
	"segurauto-backend/internal/security"
)

// AuthMiddleware attaches the request principal. In "jwt" mode it validates
// tokens this backend issued. In "firebase" mode it verifies Firebase ID
// tokens from the mobile client and resolves the local account by email.
type AuthMiddleware struct {
	mode     string
	tokens   security.TokenManager
	firebase *security.FirebaseVerifier
	users    repository.UserRepository
}

func NewAuthMiddleware(mode string, tokens security.TokenManager, firebase *security.FirebaseVerifier, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		mode:     mode,
		tokens:   tokens,
		firebase: firebase,
		users:    users,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.authenticate(r)
		if err != nil {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// RequireAdmin additionally rejects non-admin principals. Must be wrapped in
// RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())
		if principal == nil || principal.Role != domain.UserRoleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*Principal, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	if m.mode == "firebase" {
		_, email, err := m.firebase.Verify(r.Context(), token)
		if err != nil || email == "" {
			return nil, domain.ErrUnauthorized
		}
		user, err := m.users.GetByEmail(r.Context(), strings.ToLower(email))
		if err != nil {
			logger.ErrorContext(r.Context(), "firebase token maps to no local account", "error", err)
			return nil, domain.ErrUnauthorized
		}
		return &Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
	}

	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.Type != security.TokenTypeAccess {
		return nil, domain.ErrUnauthorized
	}
	return &Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrUnauthorized
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}
