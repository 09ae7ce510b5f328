package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Org int64
}

// SeedResult holds the seed command output.
type SeedResult struct {
	Store          string   `json:"store"`
	CatalogVersion int64    `json:"catalog_version"`
	Created        []string `json:"created"`
	Count          int      `json:"count"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a store with the builtin personas",
		Long: `Insert every builtin persona marked for seeding into the target store,
skipping the ones already present by name.

The global store seeds itself on first use; this command exists to
re-check it, and to seed org stores, which only ever seed on demand.
Seeding is idempotent and records the catalog version in the store's
seed history.

Examples:
  persona seed
  persona seed --org 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Org, "org", 0, "org id (omit to target the global store)")

	return cmd
}

func runSeed(opts *SeedOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := newCatalog()
	if err != nil {
		return fail(formatter, err)
	}
	repo := newRepository(opts.RootOptions, cat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	org := orgScope(cmd, opts.Org)
	created, err := repo.Seed(ctx, org)
	if err != nil {
		return fail(formatter, err)
	}

	result := SeedResult{
		Store:          storeLabel(org),
		CatalogVersion: cat.Version(),
		Created:        created,
		Count:          len(created),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintf(w, "✓ %s store already has every seeded persona (catalog v%d)\n",
			result.Store, result.CatalogVersion)
		return nil
	}

	fmt.Fprintf(w, "✓ Seeded %s store with %d persona(s) (catalog v%d)\n",
		result.Store, result.Count, result.CatalogVersion)
	for _, name := range created {
		fmt.Fprintf(w, "  + %s\n", name)
	}
	return nil
}
