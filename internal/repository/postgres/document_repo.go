package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"nfeintake/internal/domain"
	"nfeintake/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	doc.CreatedAt = time.Now().UTC()
	if len(doc.Metadata) == 0 {
		doc.Metadata = []byte("{}")
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO documents (
			id, tenant_id, file_name, file_size, content_type,
			s3_bucket, s3_key, metadata, uploaded_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.TenantID, doc.FileName, doc.FileSize, doc.ContentType,
		doc.S3Bucket, doc.S3Key, string(doc.Metadata), doc.UploadedBy, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}
