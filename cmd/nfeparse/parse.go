package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nfeintake/internal/nfe"
)

var errUnreadable = errors.New("document is unreadable")

type parseOptions struct {
	draft  bool
	strict bool
}

func newParseCmd(log *zap.Logger) *cobra.Command {
	var opts parseOptions
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse NF-e files and print the result as JSON",
		Long: `Parses each file the same way the import endpoint does and prints the
invoice (or, with --draft, its receiving draft projection) with its warnings.
Nothing is stored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				if err := parseDocument(cmd.OutOrStdout(), path, string(raw), opts); err != nil {
					return err
				}
				log.Debug("nfeparse: parsed", zap.String("file", path))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.draft, "draft", false, "print the receiving draft projection instead of the invoice")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when a document is unreadable")
	return cmd
}

type parseResult struct {
	File       string       `json:"file"`
	Unreadable bool         `json:"unreadable"`
	Invoice    *nfe.Invoice `json:"invoice,omitempty"`
	Draft      *nfe.Draft   `json:"draft,omitempty"`
	Warnings   []string     `json:"warnings"`
}

func parseDocument(out io.Writer, path, raw string, opts parseOptions) error {
	inv := nfe.Parse(raw)
	res := parseResult{File: path, Unreadable: inv.Unreadable(), Warnings: inv.Warnings}
	if opts.draft {
		d := nfe.ToDraft(inv)
		res.Draft = &d
	} else {
		res.Invoice = inv
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if opts.strict && res.Unreadable {
		return fmt.Errorf("%s: %w", path, errUnreadable)
	}
	return nil
}
