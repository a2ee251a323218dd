package port

import (
	"context"

	"github.com/google/uuid"

	"nfeintake/internal/domain"
)

// SupplierRepository defines the contract for supplier lookups.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type SupplierRepository interface {
	// ListActiveByTaxID returns at most limit active suppliers whose digits-only
	// tax id equals taxID.
	ListActiveByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string, limit int) ([]domain.Supplier, error)
}

// CatalogItemRepository defines the contract for catalog lookups used by matching.
type CatalogItemRepository interface {
	ListActiveByBarcodes(ctx context.Context, tenantID uuid.UUID, barcodes []string) ([]domain.CatalogItem, error)
	// ListActiveCandidates returns up to limit active items ordered by name.
	ListActiveCandidates(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CatalogItem, error)
}

// ReceivingRepository defines the contract for receiving persistence.
type ReceivingRepository interface {
	// Create returns domain.ErrDuplicateAccessKey when the tenant already has a
	// receiving for the same access key.
	Create(ctx context.Context, receiving *domain.Receiving) error
	GetByAccessKey(ctx context.Context, tenantID uuid.UUID, accessKey string) (*domain.Receiving, error)
}

// ReceivingItemRepository defines the contract for receiving line persistence.
type ReceivingItemRepository interface {
	CreateBatch(ctx context.Context, items []domain.ReceivingItem) error
}

// PaymentInstallmentRepository defines the contract for payable persistence.
type PaymentInstallmentRepository interface {
	CreateBatch(ctx context.Context, installments []domain.PaymentInstallment) error
}
