package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

type receivingItemRepo struct {
	db *sqlx.DB
}

// NewReceivingItemRepo creates a new PostgreSQL-backed ReceivingItemRepository.
func NewReceivingItemRepo(db *sqlx.DB) port.ReceivingItemRepository {
	return &receivingItemRepo{db: db}
}

func (r *receivingItemRepo) CreateBatch(ctx context.Context, items []domain.ReceivingItem) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range items {
		items[i].CreatedAt = now
	}

	query := `INSERT INTO receiving_items (
		id, tenant_id, receiving_id, sequence,
		supplier_code, description, ncm, cfop, unit, gtin,
		quantity, unit_cost, line_total,
		match_status, match_method, catalog_item_id, confidence, suggested_item_id,
		created_at
	) VALUES (
		:id, :tenant_id, :receiving_id, :sequence,
		:supplier_code, :description, :ncm, :cfop, :unit, :gtin,
		:quantity, :unit_cost, :line_total,
		:match_status, :match_method, :catalog_item_id, :confidence, :suggested_item_id,
		:created_at
	)`

	if _, err := sqlx.NamedExecContext(ctx, conn(ctx, r.db), query, items); err != nil {
		return fmt.Errorf("receivingItemRepo.CreateBatch: %w", err)
	}
	return nil
}
