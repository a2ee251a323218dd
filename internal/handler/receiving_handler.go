package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nfeintake/internal/domain"
	"nfeintake/internal/service"
)

// ReceivingHandler handles NF-e import endpoints.
type ReceivingHandler struct {
	ingest       service.IngestService
	maxFileBytes int64
	log          *zap.Logger
}

// NewReceivingHandler creates a new ReceivingHandler. Uploads larger than
// maxFileSizeMB are rejected before parsing.
func NewReceivingHandler(ingest service.IngestService, maxFileSizeMB int64, log *zap.Logger) *ReceivingHandler {
	return &ReceivingHandler{ingest: ingest, maxFileBytes: maxFileSizeMB << 20, log: log}
}

// ImportNFe handles POST /api/v1/receivings/nfe
// @Summary Import an NF-e XML as a draft receiving
// @Description Parses the uploaded NF-e, resolves supplier and catalog items, and creates a draft receiving with its items and payment installments.
// @Tags receivings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "NF-e XML file"
// @Param destination_location_id formData string true "Location receiving the goods"
// @Param billed_location_id formData string false "Location billed by the invoice (defaults to destination)"
// @Success 201 {object} Response{data=service.ImportOutcome} "Draft receiving created"
// @Failure 400 {object} ErrorResponseBody "Missing file, bad location or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} DuplicateErrorBody "Invoice already imported"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} UnreadableErrorBody "Document could not be read"
// @Security BearerAuth
// @Router /receivings/nfe [post]
func (h *ReceivingHandler) ImportNFe(c *gin.Context) {
	tenantID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	destination, err := uuid.Parse(strings.TrimSpace(c.PostForm("destination_location_id")))
	if err != nil {
		HandleError(c, h.log, domain.ErrInvalidLocation)
		return
	}
	var billed uuid.UUID
	if raw := strings.TrimSpace(c.PostForm("billed_location_id")); raw != "" {
		if billed, err = uuid.Parse(raw); err != nil {
			HandleError(c, h.log, domain.ErrInvalidLocation)
			return
		}
	}

	raw, fileName, ok := h.readUpload(c)
	if !ok {
		return
	}

	outcome, err := h.ingest.ImportInvoice(c.Request.Context(), service.ImportInvoiceInput{
		TenantID:              tenantID,
		UserID:                userID,
		DestinationLocationID: destination,
		BilledLocationID:      billed,
		RawDocument:           raw,
		FileName:              fileName,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondCreated(c, outcome)
}

// Preview handles POST /api/v1/nfe/preview
// @Summary Preview an NF-e XML
// @Description Parses the uploaded NF-e and returns the invoice, its draft projection and warnings. Nothing is stored.
// @Tags receivings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "NF-e XML file"
// @Success 200 {object} Response{data=service.Preview} "Parsed invoice"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /nfe/preview [post]
func (h *ReceivingHandler) Preview(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}
	raw, _, ok := h.readUpload(c)
	if !ok {
		return
	}
	RespondOK(c, h.ingest.Preview(raw))
}

// readUpload reads the multipart "file" field, enforcing the extension and
// size limits. It writes the error response itself and reports false on
// failure.
func (h *ReceivingHandler) readUpload(c *gin.Context) (content, fileName string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return "", "", false
	}
	defer func() { _ = file.Close() }()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if _, allowed := domain.AllowedExtensions[ext]; !allowed {
		HandleError(c, h.log, domain.ErrUnsupportedFileType)
		return "", "", false
	}
	if header.Size > h.maxFileBytes {
		HandleError(c, h.log, domain.ErrFileTooLarge)
		return "", "", false
	}

	body, err := readLimited(file, h.maxFileBytes)
	if err != nil {
		HandleError(c, h.log, err)
		return "", "", false
	}
	if strings.TrimSpace(string(body)) == "" {
		HandleError(c, h.log, domain.ErrEmptyDocument)
		return "", "", false
	}
	return string(body), header.Filename, true
}

func readLimited(file multipart.File, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, domain.ErrFileTooLarge
	}
	return body, nil
}
