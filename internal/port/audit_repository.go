package port

import (
	"context"

	"nfeintake/internal/domain"
)

// AuditRepository defines the contract for audit log persistence.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}
