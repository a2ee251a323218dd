package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

type paymentInstallmentRepo struct {
	db *sqlx.DB
}

// NewPaymentInstallmentRepo creates a new PostgreSQL-backed PaymentInstallmentRepository.
func NewPaymentInstallmentRepo(db *sqlx.DB) port.PaymentInstallmentRepository {
	return &paymentInstallmentRepo{db: db}
}

func (r *paymentInstallmentRepo) CreateBatch(ctx context.Context, installments []domain.PaymentInstallment) error {
	if len(installments) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range installments {
		installments[i].CreatedAt = now
	}

	query := `INSERT INTO payment_installments (
		id, tenant_id, receiving_id, supplier_id,
		installment_number, due_date, amount, status, created_at
	) VALUES (
		:id, :tenant_id, :receiving_id, :supplier_id,
		:installment_number, :due_date, :amount, :status, :created_at
	)`

	if _, err := sqlx.NamedExecContext(ctx, conn(ctx, r.db), query, installments); err != nil {
		return fmt.Errorf("paymentInstallmentRepo.CreateBatch: %w", err)
	}
	return nil
}
