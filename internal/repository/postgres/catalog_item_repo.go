package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

type catalogItemRepo struct {
	db *sqlx.DB
}

// NewCatalogItemRepo creates a new PostgreSQL-backed CatalogItemRepository.
func NewCatalogItemRepo(db *sqlx.DB) port.CatalogItemRepository {
	return &catalogItemRepo{db: db}
}

func (r *catalogItemRepo) ListActiveByBarcodes(ctx context.Context, tenantID uuid.UUID, barcodes []string) ([]domain.CatalogItem, error) {
	if len(barcodes) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT * FROM catalog_items
		 WHERE tenant_id = ? AND is_active AND barcode IN (?)
		 ORDER BY barcode, name`,
		tenantID, barcodes)
	if err != nil {
		return nil, fmt.Errorf("catalogItemRepo.ListActiveByBarcodes building query: %w", err)
	}

	var items []domain.CatalogItem
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &items, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("catalogItemRepo.ListActiveByBarcodes: %w", err)
	}
	return items, nil
}

func (r *catalogItemRepo) ListActiveCandidates(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &items,
		`SELECT * FROM catalog_items
		 WHERE tenant_id = $1 AND is_active
		 ORDER BY name, id
		 LIMIT $2`,
		tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("catalogItemRepo.ListActiveCandidates: %w", err)
	}
	return items, nil
}
