package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyDocument       = errors.New("uploaded document is empty")
	ErrInvalidLocation     = errors.New("invalid location id")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	ErrReceivingNotFound  = errors.New("receiving not found")
	ErrDuplicateAccessKey = errors.New("a receiving already exists for this access key")

	// ErrDuplicateInvoice is matched by DuplicateInvoiceError.
	ErrDuplicateInvoice = errors.New("invoice already imported")
	// ErrUnreadableDocument is matched by UnreadableDocumentError.
	ErrUnreadableDocument = errors.New("invoice document could not be read")
)

// DuplicateInvoiceError reports that an access key already has a receiving record.
type DuplicateInvoiceError struct {
	AccessKey      string
	ExistingID     uuid.UUID
	ExistingStatus ReceivingStatus
}

func (e *DuplicateInvoiceError) Error() string {
	return fmt.Sprintf("invoice %s already imported as receiving %s (status %s)",
		e.AccessKey, e.ExistingID, e.ExistingStatus)
}

// Is makes errors.Is(err, ErrDuplicateInvoice) hold.
func (e *DuplicateInvoiceError) Is(target error) bool {
	return target == ErrDuplicateInvoice
}

// UnreadableDocumentError carries the parse warnings of a document that yielded
// neither an access key nor a complete structure.
type UnreadableDocumentError struct {
	Warnings []string
}

func (e *UnreadableDocumentError) Error() string {
	return "invoice document could not be read: " + strings.Join(e.Warnings, "; ")
}

// Is makes errors.Is(err, ErrUnreadableDocument) hold.
func (e *UnreadableDocumentError) Is(target error) bool {
	return target == ErrUnreadableDocument
}
