package domain

// FileType represents the allowed file types for invoice upload.
type FileType string

const (
	FileTypeXML FileType = "xml"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"xml": FileTypeXML,
}

// AllowedFileTypes maps FileType to the media type recorded on the stored document.
var AllowedFileTypes = map[FileType]string{
	FileTypeXML: "application/xml",
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleMember  UserRole = "member"
	RoleViewer  UserRole = "viewer"
)

// ReceivingStatus is the lifecycle state of a goods-receiving record.
// This service only ever creates drafts; confirm/cancel belong to the receiving workflow.
type ReceivingStatus string

const (
	ReceivingStatusDraft     ReceivingStatus = "draft"
	ReceivingStatusConfirmed ReceivingStatus = "confirmed"
	ReceivingStatusCancelled ReceivingStatus = "cancelled"
)

// ReceivingSource records which path created a receiving record.
type ReceivingSource string

const (
	ReceivingSourceManual ReceivingSource = "manual"
	ReceivingSourceNFeXML ReceivingSource = "nfe_xml"
)

// MatchStatus is the catalog resolution state of a receiving line.
type MatchStatus string

const (
	MatchStatusPending MatchStatus = "pending"
	MatchStatusMatched MatchStatus = "matched"
	MatchStatusIgnored MatchStatus = "ignored"
)

// MatchMethod records how a line was resolved to a catalog item.
type MatchMethod string

const (
	MatchMethodNone    MatchMethod = ""
	MatchMethodBarcode MatchMethod = "barcode"
	MatchMethodName    MatchMethod = "name"
)

// InstallmentStatus is the settlement state of a payable installment.
type InstallmentStatus string

const (
	InstallmentStatusOpen InstallmentStatus = "open"
	InstallmentStatusPaid InstallmentStatus = "paid"
)

// DocumentEntityType names the entity a stored document is linked to.
type DocumentEntityType string

const (
	DocumentEntityReceiving DocumentEntityType = "receiving"
)

// AuditAction describes the type of mutation recorded in the audit log.
type AuditAction string

const (
	AuditReceivingNFeImported AuditAction = "receiving.nfe_imported"
)

// Audited table names.
const (
	TableReceivings = "receivings"
)
