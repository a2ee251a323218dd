package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nfeintake/internal/service"
)

// MockIngestService is a mock implementation of service.IngestService.
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) ImportInvoice(ctx context.Context, input service.ImportInvoiceInput) (*service.ImportOutcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportOutcome), args.Error(1)
}

func (m *MockIngestService) Preview(rawDocument string) *service.Preview {
	args := m.Called(rawDocument)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.Preview)
}
