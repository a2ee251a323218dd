package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

const receivingAccessKeyConstraint = "uq_receivings_tenant_access_key"

type receivingRepo struct {
	db *sqlx.DB
}

// NewReceivingRepo creates a new PostgreSQL-backed ReceivingRepository.
func NewReceivingRepo(db *sqlx.DB) port.ReceivingRepository {
	return &receivingRepo{db: db}
}

func (r *receivingRepo) Create(ctx context.Context, rec *domain.Receiving) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO receivings (
		id, tenant_id, location_id, billed_location_id, supplier_id,
		access_key, invoice_number, invoice_series, issue_date,
		status, source,
		subtotal, discount, freight, insurance, other_charges, total,
		notes, created_by, created_at, updated_at
	) VALUES (
		:id, :tenant_id, :location_id, :billed_location_id, :supplier_id,
		:access_key, :invoice_number, :invoice_series, :issue_date,
		:status, :source,
		:subtotal, :discount, :freight, :insurance, :other_charges, :total,
		:notes, :created_by, :created_at, :updated_at
	)`

	if _, err := sqlx.NamedExecContext(ctx, conn(ctx, r.db), query, rec); err != nil {
		if isUniqueViolation(err, receivingAccessKeyConstraint) {
			return domain.ErrDuplicateAccessKey
		}
		return fmt.Errorf("receivingRepo.Create: %w", err)
	}
	return nil
}

func (r *receivingRepo) GetByAccessKey(ctx context.Context, tenantID uuid.UUID, accessKey string) (*domain.Receiving, error) {
	var rec domain.Receiving
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &rec,
		"SELECT * FROM receivings WHERE tenant_id = $1 AND access_key = $2", tenantID, accessKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReceivingNotFound
		}
		return nil, fmt.Errorf("receivingRepo.GetByAccessKey: %w", err)
	}
	return &rec, nil
}
