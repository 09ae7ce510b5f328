package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Org int64
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch one assistant by scoped key",
		Long: `Fetch a single assistant record by its scoped key.

Global keys ("global_<id>") always resolve against the shared store.
Org keys ("org_<id>") resolve against the org named by --org; without
--org they fall back to the global store.

Examples:
  persona get global_1
  persona get org_3 --org 42
  persona get global_1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Org, "org", 0, "org id for resolving org-scoped keys")

	return cmd
}

func runGet(opts *GetOptions, rawKey string, cmd *cobra.Command) error {
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

	rec, err := repo.Get(ctx, rawKey, orgScope(cmd, opts.Org))
	if err != nil {
		return fail(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(rec)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Key:      %s\n", rec.ScopedID)
	fmt.Fprintf(w, "Name:     %s\n", rec.Name)
	fmt.Fprintf(w, "Type:     %s\n", rec.Type)
	fmt.Fprintf(w, "Archived: %v\n", rec.Archived)
	fmt.Fprintf(w, "Settings: %s\n", rec.LLMSettingsKey)
	fmt.Fprintf(w, "Created:  %s\n", rec.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Updated:  %s\n", rec.UpdatedAt.Format(time.RFC3339))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "System Prompt:")
	fmt.Fprintf(w, "  %s\n", rec.SystemPrompt)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "User Prompt Template:")
	fmt.Fprintf(w, "  %s\n", rec.UserPromptTemplate)
	return nil
}
