// Command nfeparse reads NF-e XML files and prints what the importer would see.
// Usage: nfeparse parse nota.xml [--draft]
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nfeintake/internal/config"
	"nfeintake/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Error("nfeparse failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "nfeparse",
		Short:         "Inspect NF-e XML documents offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(log))
	return root
}
