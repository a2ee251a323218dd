package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor is a mock implementation of port.Transactor. Unless a test
// sets an expectation returning an error, fn runs with the caller's context.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
