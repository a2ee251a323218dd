package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"nfeintake/internal/nfe"
)

const (
	batchSize   = 500
	defaultUnit = "UN"
	maxBarcode  = 14
	maxUnit     = 6
)

type catalogRow struct {
	name    string
	barcode string
	unit    string
}

// readCatalogSheet returns one row per distinct normalized name. Rows without
// a name, or whose barcode is not numeric or too long, are skipped.
func readCatalogSheet(f *excelize.File, sheet string) ([]catalogRow, int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]bool)
	var items []catalogRow
	skipped := 0
	for i, row := range rows {
		name := strings.TrimSpace(cellVal(row, 0))
		if i == 0 && isHeader(name) {
			continue
		}
		key := nfe.NormalizeName(name)
		if key == "" {
			skipped++
			continue
		}
		if seen[key] {
			skipped++
			continue
		}

		barcode := strings.TrimSpace(cellVal(row, 1))
		if barcode != "" && (nfe.DigitsOnly(barcode) != barcode || len(barcode) > maxBarcode) {
			skipped++
			continue
		}
		unit := strings.ToUpper(strings.TrimSpace(cellVal(row, 2)))
		if unit == "" || len(unit) > maxUnit {
			unit = defaultUnit
		}

		seen[key] = true
		items = append(items, catalogRow{name: name, barcode: barcode, unit: unit})
	}
	return items, skipped, nil
}

func isHeader(s string) bool {
	s = strings.ToLower(s)
	return s == "name" || s == "nome"
}

// itemID derives a stable id from the tenant and normalized name so that
// re-running a seed does not duplicate items.
func itemID(tenantID uuid.UUID, name string) uuid.UUID {
	return uuid.NewSHA1(tenantID, []byte(nfe.NormalizeName(name)))
}

func writeSeed(out io.Writer, tenantID uuid.UUID, items []catalogRow) error {
	if _, err := fmt.Fprintf(out,
		"-- Catalog seed for tenant %s generated from Excel.\n-- %d items in batches of %d.\nBEGIN;\n\n",
		tenantID, len(items), batchSize); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := writeBatch(out, tenantID, items[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := io.WriteString(out, "\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeBatch(out io.Writer, tenantID uuid.UUID, batch []catalogRow) error {
	var b strings.Builder
	b.WriteString("INSERT INTO catalog_items (id, tenant_id, name, barcode, unit) VALUES\n")
	for i := range batch {
		r := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s')",
			itemID(tenantID, r.name), tenantID, escapeSQL(r.name), r.barcode, escapeSQL(r.unit))
	}
	b.WriteString("\nON CONFLICT (id) DO NOTHING;\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
