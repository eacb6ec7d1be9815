package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "segurauto-backend/internal/api/http"
	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/rating"
	"segurauto-backend/internal/security"
	"segurauto-backend/internal/service"
)

// MockQuoteService
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) QuoteVehicle(ctx context.Context, vin, plate string) (*service.QuoteResult, error) {
	args := m.Called(ctx, vin, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuoteResult), args.Error(1)
}
func (m *MockQuoteService) CheckVINUnique(ctx context.Context, vin string) bool {
	args := m.Called(ctx, vin)
	return args.Bool(0)
}
func (m *MockQuoteService) TierCatalog(ctx context.Context) []domain.CoverageTier {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CoverageTier)
}

// MockClaimService
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) EligibleIncidentTypes(ctx context.Context, userID, policyID int64) ([]domain.IncidentType, error) {
	args := m.Called(ctx, userID, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncidentType), args.Error(1)
}
func (m *MockClaimService) FileClaim(ctx context.Context, userID int64, req service.FileClaimRequest) (*domain.Claim, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) ListMyClaims(ctx context.Context, userID int64) ([]domain.Claim, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Claim), args.Error(1)
}
func (m *MockClaimService) GetClaim(ctx context.Context, userID, claimID int64) (*domain.Claim, error) {
	args := m.Called(ctx, userID, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) ListClaims(ctx context.Context, status domain.ClaimStatus, page, pageSize int32) ([]domain.Claim, int64, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Claim), args.Get(1).(int64), args.Error(2)
}
func (m *MockClaimService) TransitionClaim(ctx context.Context, claimID int64, newStatus domain.ClaimStatus, resolution *domain.ClaimResolution) (*domain.Claim, error) {
	args := m.Called(ctx, claimID, newStatus, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

type testServer struct {
	router http.Handler
	tokens security.TokenManager
	quotes *MockQuoteService
	claims *MockClaimService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens := security.NewTokenManager("test-secret-at-least-32-characters!!", time.Hour, 24*time.Hour)
	quotes := new(MockQuoteService)
	claims := new(MockClaimService)

	validate := httpapi.NewValidator()
	handlers := httpapi.Handlers{
		Auth:   httpapi.NewAuthHandler(nil, validate),
		User:   httpapi.NewUserHandler(nil, validate),
		Quote:  httpapi.NewQuoteHandler(quotes, validate),
		Policy: httpapi.NewPolicyHandler(nil, validate),
		Claim:  httpapi.NewClaimHandler(claims, validate),
	}
	authMW := httpapi.NewAuthMiddleware("jwt", tokens, nil, nil)

	return &testServer{
		router: httpapi.NewRouter(handlers, authMW),
		tokens: tokens,
		quotes: quotes,
		claims: claims,
	}
}

func (s *testServer) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func customerToken(t *testing.T, tokens security.TokenManager) string {
	t.Helper()
	token, err := tokens.GenerateAccessToken(7, "maria@example.com", domain.UserRoleCustomer)
	require.NoError(t, err)
	return token
}

func TestRouter_QuoteEndpoint(t *testing.T) {
	payload := map[string]string{"vin": "5UXWX7C5XBA123456", "plate": "ABC1234"}

	t.Run("Requires Auth", func(t *testing.T) {
		srv := newTestServer(t)

		rec := srv.request(t, "POST", "/api/v1/quotes", payload, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Happy Path", func(t *testing.T) {
		srv := newTestServer(t)
		token := customerToken(t, srv.tokens)

		result := &service.QuoteResult{
			Breakdown: rating.PremiumBreakdown{BasePremium: 9000},
			Quotes:    rating.GenerateQuotes(9000),
		}
		srv.quotes.On("QuoteVehicle", mock.Anything, "5UXWX7C5XBA123456", "ABC1234").Return(result, nil)

		rec := srv.request(t, "POST", "/api/v1/quotes", payload, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var got service.QuoteResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Quotes, 3)
		assert.Equal(t, int64(22500), got.Quotes[2].FinalPrice)
	})

	t.Run("Duplicate VIN Maps To Conflict", func(t *testing.T) {
		srv := newTestServer(t)
		token := customerToken(t, srv.tokens)

		srv.quotes.On("QuoteVehicle", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateVIN)

		rec := srv.request(t, "POST", "/api/v1/quotes", payload, token)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Persistence Outage Maps To Service Unavailable", func(t *testing.T) {
		srv := newTestServer(t)
		token := customerToken(t, srv.tokens)

		wrapped := fmt.Errorf("%w: dial tcp: connection refused", domain.ErrPersistenceUnavailable)
		srv.quotes.On("QuoteVehicle", mock.Anything, mock.Anything, mock.Anything).Return(nil, wrapped)

		rec := srv.request(t, "POST", "/api/v1/quotes", payload, token)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("Validation Rejects Short VIN", func(t *testing.T) {
		srv := newTestServer(t)
		token := customerToken(t, srv.tokens)

		rec := srv.request(t, "POST", "/api/v1/quotes", map[string]string{"vin": "SHORT", "plate": "ABC1234"}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		srv.quotes.AssertNotCalled(t, "QuoteVehicle", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRouter_TierCatalogIsPublic(t *testing.T) {
	srv := newTestServer(t)
	srv.quotes.On("TierCatalog", mock.Anything).Return(domain.TierCatalog())

	rec := srv.request(t, "GET", "/api/v1/tiers", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tiers []domain.CoverageTier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiers))
	assert.Len(t, tiers, 3)
}

func TestRouter_ClaimEndpoints(t *testing.T) {
	t.Run("Coverage Mismatch Maps To Unprocessable", func(t *testing.T) {
		srv := newTestServer(t)
		token := customerToken(t, srv.tokens)

		srv.claims.On("FileClaim", mock.Anything, int64(7), mock.Anything).Return(nil, domain.ErrCoverageMismatch)

		payload := map[string]any{
			"policy_id":     5,
			"incident_type": "THEFT",
			"location":      "Av. Reforma 100",
			"description":   "Vehicle stolen overnight",
		}
		rec := srv.request(t, "POST", "/api/v1/claims", payload, token)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Admin Queue Hidden From Customers", func(t *testing.T) {
		srv := newTestServer(t)
		token := customerToken(t, srv.tokens)

		rec := srv.request(t, "GET", "/api/v1/admin/claims", nil, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Admin Transitions Claim", func(t *testing.T) {
		srv := newTestServer(t)
		adminToken, err := srv.tokens.GenerateAccessToken(1, "admin@example.com", domain.UserRoleAdmin)
		require.NoError(t, err)

		updated := &domain.Claim{ID: 9, Status: domain.ClaimStatusInReview}
		srv.claims.On("TransitionClaim", mock.Anything, int64(9), domain.ClaimStatusInReview, (*domain.ClaimResolution)(nil)).Return(updated, nil)

		rec := srv.request(t, "PUT", "/api/v1/admin/claims/9/status", map[string]any{"status": "IN_REVIEW"}, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Claim
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.ClaimStatusInReview, got.Status)
	})
}
