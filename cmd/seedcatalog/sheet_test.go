package main

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newSheet(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

func TestReadCatalogSheet(t *testing.T) {
	f := newSheet(t, [][]interface{}{
		{"Nome", "Barcode", "Unit"},
		{"Arroz 5kg", "7891000100103", "pct"},
		{"ARROZ 5KG", "", ""},
		{"Feijão Carioca 1kg", "", ""},
		{"", "7890000000017", ""},
		{"Óleo de Soja", "78-91", ""},
	})

	items, skipped, err := readCatalogSheet(f, "Sheet1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, catalogRow{name: "Arroz 5kg", barcode: "7891000100103", unit: "PCT"}, items[0])
	assert.Equal(t, catalogRow{name: "Feijão Carioca 1kg", barcode: "", unit: "UN"}, items[1])
	assert.Equal(t, 3, skipped)
}

func TestWriteSeed(t *testing.T) {
	tenantID := uuid.New()
	var out strings.Builder

	err := writeSeed(&out, tenantID, []catalogRow{{name: "Pão d'água", unit: "UN"}})

	require.NoError(t, err)
	sql := out.String()
	assert.Contains(t, sql, "BEGIN;")
	assert.Contains(t, sql, "'Pão d''água'")
	assert.Contains(t, sql, itemID(tenantID, "pao d'agua").String(), "id is derived from the normalized name")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}
