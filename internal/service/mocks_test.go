package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/payment"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, page, pageSize int32) ([]domain.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

// MockPolicyRepo
type MockPolicyRepo struct {
	mock.Mock
}

func (m *MockPolicyRepo) CreateWithVehicle(ctx context.Context, vehicle *domain.Vehicle, policy *domain.Policy) error {
	args := m.Called(ctx, vehicle, policy)
	return args.Error(0)
}
func (m *MockPolicyRepo) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}
func (m *MockPolicyRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Policy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}
func (m *MockPolicyRepo) ListAllVINs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockPolicyRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Policy, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

// MockClaimRepo
type MockClaimRepo struct {
	mock.Mock
}

func (m *MockClaimRepo) Create(ctx context.Context, claim *domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}
func (m *MockClaimRepo) GetByID(ctx context.Context, id int64) (*domain.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimRepo) Update(ctx context.Context, claim *domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}
func (m *MockClaimRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Claim, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Claim), args.Error(1)
}
func (m *MockClaimRepo) List(ctx context.Context, status domain.ClaimStatus, page, pageSize int32) ([]domain.Claim, int64, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Claim), args.Get(1).(int64), args.Error(2)
}
func (m *MockClaimRepo) ListPendingSince(ctx context.Context, olderThan time.Time) ([]domain.Claim, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Claim), args.Error(1)
}

// MockDecoder
type MockDecoder struct {
	mock.Mock
}

func (m *MockDecoder) Decode(ctx context.Context, vin string) (*domain.VehicleAttributes, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleAttributes), args.Error(1)
}

// MockProcessor
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Charge(ctx context.Context, amount int64, card payment.CardDetails) error {
	args := m.Called(ctx, amount, card)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPolicyPurchased(ctx context.Context, to, name string, policy *domain.Policy) error {
	args := m.Called(ctx, to, name, policy)
	return args.Error(0)
}
func (m *MockEmailService) SendClaimStatusChanged(ctx context.Context, to, name string, claim *domain.Claim) error {
	args := m.Called(ctx, to, name, claim)
	return args.Error(0)
}
func (m *MockEmailService) SendPolicyExpiryReminder(ctx context.Context, to, name string, policy *domain.Policy) error {
	args := m.Called(ctx, to, name, policy)
	return args.Error(0)
}
func (m *MockEmailService) SendClaimReviewNudge(ctx context.Context, to string, pendingCount int) error {
	args := m.Called(ctx, to, pendingCount)
	return args.Error(0)
}
