package port

import (
	"context"

	"nfeintake/internal/domain"
)

// DocumentRepository defines the contract for stored supporting files.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
}

// DocumentLinkRepository defines the contract for document-to-entity links.
type DocumentLinkRepository interface {
	Create(ctx context.Context, link *domain.DocumentLink) error
}
