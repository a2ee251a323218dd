package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

type documentLinkRepo struct {
	db *sqlx.DB
}

// NewDocumentLinkRepo creates a new PostgreSQL-backed DocumentLinkRepository.
func NewDocumentLinkRepo(db *sqlx.DB) port.DocumentLinkRepository {
	return &documentLinkRepo{db: db}
}

func (r *documentLinkRepo) Create(ctx context.Context, link *domain.DocumentLink) error {
	link.CreatedAt = time.Now().UTC()
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO document_links (id, tenant_id, document_id, entity_type, entity_id, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		link.ID, link.TenantID, link.DocumentID, link.EntityType, link.EntityID, link.CreatedBy, link.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentLinkRepo.Create: %w", err)
	}
	return nil
}
