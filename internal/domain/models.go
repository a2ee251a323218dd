package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier is a vendor registered for a tenant. TaxID is stored digits-only.
type Supplier struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	TaxID     string    `db:"tax_id" json:"tax_id"`
	LegalName string    `db:"legal_name" json:"legal_name"`
	TradeName string    `db:"trade_name" json:"trade_name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CatalogItem is a product the tenant stocks.
type CatalogItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Barcode   string    `db:"barcode" json:"barcode"`
	Unit      string    `db:"unit" json:"unit"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Receiving is a goods-receiving record. Records created from an NF-e carry its
// access key, which is unique per tenant.
type Receiving struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	TenantID         uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	LocationID       uuid.UUID       `db:"location_id" json:"location_id"`
	BilledLocationID uuid.UUID       `db:"billed_location_id" json:"billed_location_id"`
	SupplierID       *uuid.UUID      `db:"supplier_id" json:"supplier_id"`
	AccessKey        *string         `db:"access_key" json:"access_key"`
	InvoiceNumber    string          `db:"invoice_number" json:"invoice_number"`
	InvoiceSeries    string          `db:"invoice_series" json:"invoice_series"`
	IssueDate        *time.Time      `db:"issue_date" json:"issue_date"`
	Status           ReceivingStatus `db:"status" json:"status"`
	Source           ReceivingSource `db:"source" json:"source"`
	Subtotal         decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount         decimal.Decimal `db:"discount" json:"discount"`
	Freight          decimal.Decimal `db:"freight" json:"freight"`
	Insurance        decimal.Decimal `db:"insurance" json:"insurance"`
	OtherCharges     decimal.Decimal `db:"other_charges" json:"other_charges"`
	Total            decimal.Decimal `db:"total" json:"total"`
	Notes            string          `db:"notes" json:"notes"`
	CreatedBy        uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// ReceivingItem is one invoice line on a receiving record.
// MatchStatus is matched exactly when CatalogItemID is set.
type ReceivingItem struct {
	ID              uuid.UUID           `db:"id" json:"id"`
	TenantID        uuid.UUID           `db:"tenant_id" json:"tenant_id"`
	ReceivingID     uuid.UUID           `db:"receiving_id" json:"receiving_id"`
	Sequence        int                 `db:"sequence" json:"sequence"`
	SupplierCode    string              `db:"supplier_code" json:"supplier_code"`
	Description     string              `db:"description" json:"description"`
	NCM             string              `db:"ncm" json:"ncm"`
	CFOP            string              `db:"cfop" json:"cfop"`
	Unit            string              `db:"unit" json:"unit"`
	GTIN            string              `db:"gtin" json:"gtin"`
	Quantity        decimal.Decimal     `db:"quantity" json:"quantity"`
	UnitCost        decimal.Decimal     `db:"unit_cost" json:"unit_cost"`
	LineTotal       decimal.Decimal     `db:"line_total" json:"line_total"`
	MatchStatus     MatchStatus         `db:"match_status" json:"match_status"`
	MatchMethod     MatchMethod         `db:"match_method" json:"match_method,omitempty"`
	CatalogItemID   *uuid.UUID          `db:"catalog_item_id" json:"catalog_item_id"`
	Confidence      decimal.NullDecimal `db:"confidence" json:"confidence"`
	SuggestedItemID *uuid.UUID          `db:"suggested_item_id" json:"suggested_item_id,omitempty"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
}

// PaymentInstallment is one payable derived from the invoice's billing section.
type PaymentInstallment struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	TenantID          uuid.UUID         `db:"tenant_id" json:"tenant_id"`
	ReceivingID       uuid.UUID         `db:"receiving_id" json:"receiving_id"`
	SupplierID        *uuid.UUID        `db:"supplier_id" json:"supplier_id"`
	InstallmentNumber int               `db:"installment_number" json:"installment_number"`
	DueDate           time.Time         `db:"due_date" json:"due_date"`
	Amount            decimal.Decimal   `db:"amount" json:"amount"`
	Status            InstallmentStatus `db:"status" json:"status"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}

// Document is a stored supporting file. Metadata is a free-form JSON object.
type Document struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TenantID    uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	FileName    string          `db:"file_name" json:"file_name"`
	FileSize    int64           `db:"file_size" json:"file_size"`
	ContentType string          `db:"content_type" json:"content_type"`
	S3Bucket    string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key       string          `db:"s3_key" json:"s3_key"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata"`
	UploadedBy  uuid.UUID       `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// DocumentLink attaches a document to a business entity.
type DocumentLink struct {
	ID         uuid.UUID          `db:"id" json:"id"`
	TenantID   uuid.UUID          `db:"tenant_id" json:"tenant_id"`
	DocumentID uuid.UUID          `db:"document_id" json:"document_id"`
	EntityType DocumentEntityType `db:"entity_type" json:"entity_type"`
	EntityID   uuid.UUID          `db:"entity_id" json:"entity_id"`
	CreatedBy  uuid.UUID          `db:"created_by" json:"created_by"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
}

// AuditEntry records a single mutation for compliance review.
type AuditEntry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	TenantID   uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	UserID     *uuid.UUID      `db:"user_id" json:"user_id"`
	Action     AuditAction     `db:"action" json:"action"`
	TableName  string          `db:"table_name" json:"table_name"`
	RecordID   uuid.UUID       `db:"record_id" json:"record_id"`
	Before     json.RawMessage `db:"before_value" json:"before_value"`
	After      json.RawMessage `db:"after_value" json:"after_value"`
	LocationID *uuid.UUID      `db:"location_id" json:"location_id"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
