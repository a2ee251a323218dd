package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nfeintake/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// MockDocumentLinkRepo is a mock implementation of port.DocumentLinkRepository.
type MockDocumentLinkRepo struct {
	mock.Mock
}

func (m *MockDocumentLinkRepo) Create(ctx context.Context, link *domain.DocumentLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
