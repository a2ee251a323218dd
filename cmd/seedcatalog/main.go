// Command seedcatalog converts a catalog spreadsheet into a SQL seed file for
// one tenant's catalog_items.
// Columns: A=name, B=barcode (optional), C=unit (optional). A first row whose
// column A reads "name" or "nome" is treated as a header.
// Usage: go run ./cmd/seedcatalog --tenant <uuid> --file catalog.xlsx
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"nfeintake/internal/config"
	"nfeintake/internal/logger"
)

func main() {
	log, err := logger.New(config.LogConfig{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Error("seedcatalog failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	var (
		xlsxPath string
		sheet    string
		tenant   string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:           "seedcatalog",
		Short:         "Generate a catalog_items SQL seed from an Excel sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			return run(log, xlsxPath, sheet, tenantID, outPath)
		},
	}
	cmd.Flags().StringVarP(&xlsxPath, "file", "f", "catalog.xlsx", "spreadsheet to read")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant id owning the items")
	cmd.Flags().StringVarP(&outPath, "out", "o", "db/seeds/catalog_items.sql", "SQL file to write")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func run(log *zap.Logger, xlsxPath, sheet string, tenantID uuid.UUID, outPath string) error {
	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	items, skipped, err := readCatalogSheet(f, sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	log.Info("sheet read",
		zap.String("sheet", sheet), zap.Int("items", len(items)), zap.Int("skipped", skipped))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSeed(out, tenantID, items); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}
	log.Info("seed written",
		zap.Int("items", len(items)),
		zap.Int("batches", (len(items)+batchSize-1)/batchSize),
		zap.String("out", outPath))
	return nil
}
