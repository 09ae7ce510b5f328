package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirrordesk/persona/internal/assistant"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Org  int64
	Type string
}

// ListResult holds the list command output.
type ListResult struct {
	Store      string                `json:"store"`
	Assistants []assistant.Assistant `json:"assistants"`
	Count      int                   `json:"count"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assistants in one store",
		Long: `List the assistants in the global store, or in one org's store.

Records come back in insertion order with their scoped keys. Archived
assistants are included and marked.

Examples:
  persona list
  persona list --org 42
  persona list --type Ask --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Org, "org", 0, "org id (omit to target the global store)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "filter by assistant type (SimpleChat|Agent|Ask)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
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
	recs, err := repo.List(ctx, org, assistant.Type(opts.Type))
	if err != nil {
		return fail(formatter, err)
	}

	result := ListResult{
		Store:      storeLabel(org),
		Assistants: recs,
		Count:      len(recs),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputListText(cmd, result)
}

// outputListText renders the listing as human-readable text.
func outputListText(cmd *cobra.Command, result ListResult) error {
	w := cmd.OutOrStdout()

	if result.Count == 0 {
		fmt.Fprintf(w, "No assistants in %s store\n", result.Store)
		return nil
	}

	fmt.Fprintf(w, "Assistants in %s store: %d\n", result.Store, result.Count)
	fmt.Fprintln(w)

	for _, rec := range result.Assistants {
		suffix := ""
		if rec.Archived {
			suffix = " (archived)"
		}
		fmt.Fprintf(w, "  %-10s  %-12s  %s%s\n", rec.ScopedID, rec.Type, rec.Name, suffix)
	}
	return nil
}
