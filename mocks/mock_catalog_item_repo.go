package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nfeintake/internal/domain"
)

// MockCatalogItemRepo is a mock implementation of port.CatalogItemRepository.
type MockCatalogItemRepo struct {
	mock.Mock
}

func (m *MockCatalogItemRepo) ListActiveByBarcodes(ctx context.Context, tenantID uuid.UUID, barcodes []string) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, tenantID, barcodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogItemRepo) ListActiveCandidates(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}
