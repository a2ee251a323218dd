package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"nfeintake/internal/config"
	"nfeintake/internal/domain"
	"nfeintake/internal/nfe"
	"nfeintake/internal/port"
)

const (
	// supplierLookupLimit is two so an ambiguous tax id can be told apart from
	// a unique one without loading every duplicate.
	supplierLookupLimit = 2
	dateLayout          = "2006-01-02"
)

// ImportInvoiceInput is the DTO for importing one NF-e document. Tenant and
// user come from the authenticated caller.
type ImportInvoiceInput struct {
	TenantID              uuid.UUID
	UserID                uuid.UUID
	DestinationLocationID uuid.UUID
	BilledLocationID      uuid.UUID
	RawDocument           string
	FileName              string
}

// ImportOutcome is the result of a successful import.
type ImportOutcome struct {
	Receiving        *domain.Receiving           `json:"receiving"`
	Items            []domain.ReceivingItem      `json:"items"`
	Installments     []domain.PaymentInstallment `json:"installments"`
	Draft            nfe.Draft                   `json:"draft"`
	Warnings         []string                    `json:"warnings"`
	SupplierMatched  bool                        `json:"supplier_matched"`
	ItemsAutoMatched int                         `json:"items_auto_matched"`
	DocumentID       uuid.UUID                   `json:"document_id"`
}

// Preview is a parsed document and its projection, with no side effects.
type Preview struct {
	Invoice  *nfe.Invoice `json:"invoice"`
	Draft    nfe.Draft    `json:"draft"`
	Warnings []string     `json:"warnings"`
}

// IngestService turns NF-e documents into draft receivings.
type IngestService interface {
	ImportInvoice(ctx context.Context, input ImportInvoiceInput) (*ImportOutcome, error)
	Preview(rawDocument string) *Preview
}

type ingestService struct {
	receivingRepo   port.ReceivingRepository
	itemRepo        port.ReceivingItemRepository
	installmentRepo port.PaymentInstallmentRepository
	supplierRepo    port.SupplierRepository
	catalogRepo     port.CatalogItemRepository
	documentRepo    port.DocumentRepository
	linkRepo        port.DocumentLinkRepository
	auditRepo       port.AuditRepository
	storage         port.ObjectStorage
	tx              port.Transactor
	bucket          string
	cfg             config.IngestConfig
	log             *zap.Logger
	now             func() time.Time
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	receivingRepo port.ReceivingRepository,
	itemRepo port.ReceivingItemRepository,
	installmentRepo port.PaymentInstallmentRepository,
	supplierRepo port.SupplierRepository,
	catalogRepo port.CatalogItemRepository,
	documentRepo port.DocumentRepository,
	linkRepo port.DocumentLinkRepository,
	auditRepo port.AuditRepository,
	storage port.ObjectStorage,
	tx port.Transactor,
	s3Cfg *config.S3Config,
	cfg config.IngestConfig,
	log *zap.Logger,
) IngestService {
	return &ingestService{
		receivingRepo:   receivingRepo,
		itemRepo:        itemRepo,
		installmentRepo: installmentRepo,
		supplierRepo:    supplierRepo,
		catalogRepo:     catalogRepo,
		documentRepo:    documentRepo,
		linkRepo:        linkRepo,
		auditRepo:       auditRepo,
		storage:         storage,
		tx:              tx,
		bucket:          s3Cfg.Bucket,
		cfg:             cfg,
		log:             log,
		now:             time.Now,
	}
}

func (s *ingestService) Preview(rawDocument string) *Preview {
	inv := nfe.Parse(rawDocument)
	return &Preview{Invoice: inv, Draft: nfe.ToDraft(inv), Warnings: inv.Warnings}
}

func (s *ingestService) ImportInvoice(ctx context.Context, input ImportInvoiceInput) (*ImportOutcome, error) {
	if strings.TrimSpace(input.RawDocument) == "" {
		return nil, domain.ErrEmptyDocument
	}
	if input.DestinationLocationID == uuid.Nil {
		return nil, domain.ErrInvalidLocation
	}
	if input.BilledLocationID == uuid.Nil {
		input.BilledLocationID = input.DestinationLocationID
	}

	inv := nfe.Parse(input.RawDocument)
	if inv.Unreadable() {
		return nil, &domain.UnreadableDocumentError{Warnings: inv.Warnings}
	}
	draft := nfe.ToDraft(inv)

	if inv.AccessKey != "" {
		if err := s.checkNotImported(ctx, input.TenantID, inv.AccessKey); err != nil {
			return nil, err
		}
	}

	supplierID, err := s.resolveSupplier(ctx, input.TenantID, draft.SupplierTaxID)
	if err != nil {
		return nil, err
	}

	matcher, err := s.loadMatcher(ctx, input.TenantID, draft.Lines)
	if err != nil {
		return nil, err
	}

	receiving := s.buildReceiving(input, inv, draft, supplierID)
	items, autoMatched := s.buildItems(input.TenantID, receiving.ID, draft.Lines, matcher)
	installments := s.buildInstallments(input.TenantID, receiving.ID, supplierID, inv)

	doc, err := s.archive(ctx, input, inv)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.receivingRepo.Create(ctx, receiving); err != nil {
			if errors.Is(err, domain.ErrDuplicateAccessKey) {
				return err
			}
			return fmt.Errorf("creating receiving draft: %w", err)
		}
		if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
			return fmt.Errorf("creating receiving items: %w", err)
		}
		if err := s.installmentRepo.CreateBatch(ctx, installments); err != nil {
			return fmt.Errorf("creating payment installments: %w", err)
		}
		if err := s.documentRepo.Create(ctx, doc); err != nil {
			return fmt.Errorf("linking supporting document: %w", err)
		}
		link := &domain.DocumentLink{
			ID:         uuid.New(),
			TenantID:   input.TenantID,
			DocumentID: doc.ID,
			EntityType: domain.DocumentEntityReceiving,
			EntityID:   receiving.ID,
			CreatedBy:  input.UserID,
		}
		if err := s.linkRepo.Create(ctx, link); err != nil {
			return fmt.Errorf("linking supporting document: %w", err)
		}
		return nil
	})
	if err != nil {
		s.discardArchive(ctx, doc)
		if errors.Is(err, domain.ErrDuplicateAccessKey) {
			return nil, s.duplicateAfterRace(ctx, input.TenantID, inv.AccessKey)
		}
		return nil, err
	}

	s.log.Info("ingestService.ImportInvoice: receiving draft created",
		zap.Stringer("tenant_id", input.TenantID),
		zap.Stringer("receiving_id", receiving.ID),
		zap.String("access_key", inv.AccessKey),
		zap.Int("lines", len(items)),
		zap.Int("auto_matched", autoMatched),
		zap.Bool("supplier_matched", supplierID != nil),
		zap.Int("warnings", len(inv.Warnings)))

	s.audit(ctx, input, receiving.ID, map[string]any{
		"file_name":          input.FileName,
		"access_key":         inv.AccessKey,
		"line_count":         len(items),
		"items_auto_matched": autoMatched,
		"supplier_matched":   supplierID != nil,
	})

	return &ImportOutcome{
		Receiving:        receiving,
		Items:            items,
		Installments:     installments,
		Draft:            draft,
		Warnings:         inv.Warnings,
		SupplierMatched:  supplierID != nil,
		ItemsAutoMatched: autoMatched,
		DocumentID:       doc.ID,
	}, nil
}

// checkNotImported is the advisory pre-check; the unique index on
// (tenant_id, access_key) is what actually prevents a second draft.
func (s *ingestService) checkNotImported(ctx context.Context, tenantID uuid.UUID, accessKey string) error {
	existing, err := s.receivingRepo.GetByAccessKey(ctx, tenantID, accessKey)
	if err == nil {
		return &domain.DuplicateInvoiceError{
			AccessKey:      accessKey,
			ExistingID:     existing.ID,
			ExistingStatus: existing.Status,
		}
	}
	if errors.Is(err, domain.ErrReceivingNotFound) {
		return nil
	}
	return fmt.Errorf("checking for existing receiving: %w", err)
}

// duplicateAfterRace reports a concurrent import that won the unique index.
func (s *ingestService) duplicateAfterRace(ctx context.Context, tenantID uuid.UUID, accessKey string) error {
	s.log.Warn("ingestService.ImportInvoice: concurrent import of the same access key",
		zap.Stringer("tenant_id", tenantID), zap.String("access_key", accessKey))
	if err := s.checkNotImported(ctx, tenantID, accessKey); err != nil {
		return err
	}
	return fmt.Errorf("creating receiving draft: %w", domain.ErrDuplicateAccessKey)
}

func (s *ingestService) resolveSupplier(ctx context.Context, tenantID uuid.UUID, taxID string) (*uuid.UUID, error) {
	taxID = nfe.DigitsOnly(taxID)
	if taxID == "" {
		return nil, nil
	}
	suppliers, err := s.supplierRepo.ListActiveByTaxID(ctx, tenantID, taxID, supplierLookupLimit)
	if err != nil {
		return nil, fmt.Errorf("resolving supplier: %w", err)
	}
	if len(suppliers) != 1 {
		if len(suppliers) > 1 {
			s.log.Info("ingestService.ImportInvoice: ambiguous supplier tax id, leaving supplier unset",
				zap.Stringer("tenant_id", tenantID), zap.String("tax_id", taxID))
		}
		return nil, nil
	}
	id := suppliers[0].ID
	return &id, nil
}

// loadMatcher fetches everything line resolution needs in at most two
// queries: one set lookup for barcodes and one bounded candidate list, the
// latter only when some line is not settled by its barcode.
func (s *ingestService) loadMatcher(ctx context.Context, tenantID uuid.UUID, lines []nfe.DraftLine) (*catalogMatcher, error) {
	m := newCatalogMatcher(
		decimal.NewFromFloat(s.cfg.BarcodeConfidence),
		decimal.NewFromFloat(s.cfg.NameConfidence),
	)
	if len(lines) == 0 {
		return m, nil
	}

	seen := map[string]struct{}{}
	var barcodes []string
	for _, l := range lines {
		if l.GTIN == "" {
			continue
		}
		if _, ok := seen[l.GTIN]; !ok {
			seen[l.GTIN] = struct{}{}
			barcodes = append(barcodes, l.GTIN)
		}
	}
	if len(barcodes) > 0 {
		hits, err := s.catalogRepo.ListActiveByBarcodes(ctx, tenantID, barcodes)
		if err != nil {
			return nil, fmt.Errorf("loading catalog items by barcode: %w", err)
		}
		m.addBarcodeHits(hits)
	}

	if !needsNameMatching(lines, m) {
		return m, nil
	}
	candidates, err := s.catalogRepo.ListActiveCandidates(ctx, tenantID, s.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("loading catalog candidates: %w", err)
	}
	if len(candidates) == s.cfg.CandidateLimit {
		s.log.Debug("ingestService.ImportInvoice: catalog candidate limit reached, name matching is partial",
			zap.Stringer("tenant_id", tenantID), zap.Int("limit", s.cfg.CandidateLimit))
	}
	m.addCandidates(candidates, s.cfg.SuggestNames)
	return m, nil
}

func needsNameMatching(lines []nfe.DraftLine, m *catalogMatcher) bool {
	for _, l := range lines {
		if _, ok := m.barcodeHit(l.GTIN); !ok {
			return true
		}
	}
	return false
}

func (s *ingestService) buildReceiving(input ImportInvoiceInput, inv *nfe.Invoice, draft nfe.Draft, supplierID *uuid.UUID) *domain.Receiving {
	notes := "Imported from NF-e XML file " + input.FileName
	if inv.Notes != "" {
		notes += "\n" + inv.Notes
	}
	rec := &domain.Receiving{
		ID:               uuid.New(),
		TenantID:         input.TenantID,
		LocationID:       input.DestinationLocationID,
		BilledLocationID: input.BilledLocationID,
		SupplierID:       supplierID,
		InvoiceNumber:    draft.InvoiceNumber,
		InvoiceSeries:    draft.InvoiceSeries,
		IssueDate:        parseDate(draft.IssueDate),
		Status:           domain.ReceivingStatusDraft,
		Source:           domain.ReceivingSourceNFeXML,
		Subtotal:         draft.Subtotal,
		Discount:         draft.Discount,
		Freight:          draft.Freight,
		Insurance:        draft.Insurance,
		OtherCharges:     draft.OtherCharges,
		Total:            draft.Total,
		Notes:            notes,
		CreatedBy:        input.UserID,
	}
	if draft.AccessKey != "" {
		key := draft.AccessKey
		rec.AccessKey = &key
	}
	return rec
}

func (s *ingestService) buildItems(tenantID, receivingID uuid.UUID, lines []nfe.DraftLine, m *catalogMatcher) ([]domain.ReceivingItem, int) {
	items := make([]domain.ReceivingItem, 0, len(lines))
	matched := 0
	for _, l := range lines {
		res := m.resolve(l)
		if res.Status == domain.MatchStatusMatched {
			matched++
		}
		items = append(items, domain.ReceivingItem{
			ID:              uuid.New(),
			TenantID:        tenantID,
			ReceivingID:     receivingID,
			Sequence:        l.Sequence,
			SupplierCode:    l.SupplierCode,
			Description:     l.Description,
			NCM:             l.NCM,
			CFOP:            l.CFOP,
			Unit:            l.Unit,
			GTIN:            l.GTIN,
			Quantity:        l.Quantity,
			UnitCost:        l.UnitCost,
			LineTotal:       l.LineTotal,
			MatchStatus:     res.Status,
			MatchMethod:     res.Method,
			CatalogItemID:   res.ItemID,
			Confidence:      res.Confidence,
			SuggestedItemID: res.Suggested,
		})
	}
	return items, matched
}

func (s *ingestService) buildInstallments(tenantID, receivingID uuid.UUID, supplierID *uuid.UUID, inv *nfe.Invoice) []domain.PaymentInstallment {
	out := make([]domain.PaymentInstallment, 0, len(inv.Installments))
	for _, inst := range inv.Installments {
		out = append(out, domain.PaymentInstallment{
			ID:                uuid.New(),
			TenantID:          tenantID,
			ReceivingID:       receivingID,
			SupplierID:        supplierID,
			InstallmentNumber: installmentNumber(inst.Number),
			DueDate:           s.dueDate(inst.DueDate, inv.IssueDate),
			Amount:            inst.Amount,
			Status:            domain.InstallmentStatusOpen,
		})
	}
	return out
}

// installmentNumber parses nDup, defaulting to 1 for anything that is not a
// positive integer.
func installmentNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// dueDate falls back from the installment's own date to the issue date and
// then to today's UTC date.
func (s *ingestService) dueDate(own, issued string) time.Time {
	if d := parseDate(own); d != nil {
		return *d
	}
	if d := parseDate(issued); d != nil {
		return *d
	}
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// archive uploads the original file and returns the document record that
// will point at it.
func (s *ingestService) archive(ctx context.Context, input ImportInvoiceInput, inv *nfe.Invoice) (*domain.Document, error) {
	meta := map[string]string{
		"access_key":     inv.AccessKey,
		"invoice_number": inv.Number,
	}
	if inv.Issuer != nil {
		meta["issuer_tax_id"] = inv.Issuer.TaxID
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding document metadata: %w", err)
	}

	fileName := path.Base(strings.ReplaceAll(input.FileName, "\\", "/"))
	if fileName == "." || fileName == "/" || fileName == "" {
		fileName = "nfe.xml"
	}
	doc := &domain.Document{
		ID:          uuid.New(),
		TenantID:    input.TenantID,
		FileName:    input.FileName,
		FileSize:    int64(len(input.RawDocument)),
		ContentType: domain.AllowedFileTypes[domain.FileTypeXML],
		S3Bucket:    s.bucket,
		Metadata:    metaJSON,
		UploadedBy:  input.UserID,
	}
	doc.S3Key = fmt.Sprintf("tenants/%s/nfe/%s/%s", input.TenantID, doc.ID, fileName)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      doc.S3Bucket,
		Key:         doc.S3Key,
		Body:        strings.NewReader(input.RawDocument),
		ContentType: doc.ContentType,
		Size:        doc.FileSize,
	})
	if err != nil {
		s.log.Error("ingestService.ImportInvoice: archiving original document failed",
			zap.String("key", doc.S3Key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return doc, nil
}

func (s *ingestService) discardArchive(ctx context.Context, doc *domain.Document) {
	if err := s.storage.Delete(context.WithoutCancel(ctx), doc.S3Bucket, doc.S3Key); err != nil {
		s.log.Warn("ingestService.ImportInvoice: failed to remove archived document after rollback",
			zap.String("key", doc.S3Key), zap.Error(err))
	}
}

// audit records the import. Failures are logged but never fail the import,
// which is already committed.
func (s *ingestService) audit(ctx context.Context, input ImportInvoiceInput, receivingID uuid.UUID, after map[string]any) {
	if s.auditRepo == nil {
		return
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		s.log.Warn("ingestService.audit: encoding audit payload", zap.Error(err))
		return
	}
	userID := input.UserID
	locationID := input.DestinationLocationID
	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		TenantID:   input.TenantID,
		UserID:     &userID,
		Action:     domain.AuditReceivingNFeImported,
		TableName:  domain.TableReceivings,
		RecordID:   receivingID,
		After:      afterJSON,
		LocationID: &locationID,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Warn("ingestService.audit: failed to write audit entry",
			zap.Stringer("receiving_id", receivingID), zap.Error(err))
	}
}
