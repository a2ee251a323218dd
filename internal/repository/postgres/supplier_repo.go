package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) ListActiveByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string, limit int) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &suppliers,
		`SELECT * FROM suppliers
		 WHERE tenant_id = $1 AND tax_id = $2 AND is_active
		 ORDER BY created_at
		 LIMIT $3`,
		tenantID, taxID, limit)
	if err != nil {
		return nil, fmt.Errorf("supplierRepo.ListActiveByTaxID: %w", err)
	}
	return suppliers, nil
}
