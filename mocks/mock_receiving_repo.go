package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nfeintake/internal/domain"
)

// MockReceivingRepo is a mock implementation of port.ReceivingRepository.
type MockReceivingRepo struct {
	mock.Mock
}

func (m *MockReceivingRepo) Create(ctx context.Context, receiving *domain.Receiving) error {
	args := m.Called(ctx, receiving)
	return args.Error(0)
}

func (m *MockReceivingRepo) GetByAccessKey(ctx context.Context, tenantID uuid.UUID, accessKey string) (*domain.Receiving, error) {
	args := m.Called(ctx, tenantID, accessKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receiving), args.Error(1)
}

// MockReceivingItemRepo is a mock implementation of port.ReceivingItemRepository.
type MockReceivingItemRepo struct {
	mock.Mock
}

func (m *MockReceivingItemRepo) CreateBatch(ctx context.Context, items []domain.ReceivingItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

// MockPaymentInstallmentRepo is a mock implementation of port.PaymentInstallmentRepository.
type MockPaymentInstallmentRepo struct {
	mock.Mock
}

func (m *MockPaymentInstallmentRepo) CreateBatch(ctx context.Context, installments []domain.PaymentInstallment) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}
