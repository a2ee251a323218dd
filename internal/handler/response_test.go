package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"nfeintake/internal/domain"
	"nfeintake/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&domain.DuplicateInvoiceError{}, http.StatusConflict, "DUPLICATE_INVOICE"},
		{fmt.Errorf("creating receiving draft: %w", domain.ErrDuplicateAccessKey), http.StatusConflict, "DUPLICATE_INVOICE"},
		{&domain.UnreadableDocumentError{}, http.StatusUnprocessableEntity, "UNREADABLE_DOCUMENT"},
		{domain.ErrEmptyDocument, http.StatusBadRequest, "EMPTY_DOCUMENT"},
		{domain.ErrInvalidLocation, http.StatusBadRequest, "INVALID_LOCATION"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{fmt.Errorf("%w: timeout", domain.ErrUploadFailed), http.StatusBadGateway, "UPLOAD_FAILED"},
		{fmt.Errorf("creating receiving items: %w", errors.New("conn reset")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		status, code, _ := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
