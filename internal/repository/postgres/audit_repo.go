package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO audit_log (id, tenant_id, user_id, action, table_name, record_id, before_value, after_value, location_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.TenantID, entry.UserID, entry.Action, entry.TableName, entry.RecordID,
		nullJSON(entry.Before), nullJSON(entry.After), entry.LocationID)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}
	return nil
}

// nullJSON stores an empty payload as SQL NULL rather than invalid JSON.
func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
