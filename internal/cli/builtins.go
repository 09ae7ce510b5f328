package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirrordesk/persona/internal/assistant"
)

// BuiltinsOptions holds flags for the builtins command.
type BuiltinsOptions struct {
	*RootOptions
	Type        string
	SettingsKey string
}

// BuiltinsResult holds the builtins command output.
type BuiltinsResult struct {
	CatalogVersion int64                 `json:"catalog_version"`
	Assistants     []assistant.Assistant `json:"assistants"`
	Count          int                   `json:"count"`
}

// NewBuiltinsCommand creates the builtins command.
func NewBuiltinsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuiltinsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "builtins",
		Short: "Show the builtin persona catalog",
		Long: `Render the builtin persona catalog as unpersisted assistant records.

This reads only the catalog embedded in the binary - no store is opened
and nothing is written. Records carry no keys or timestamps because they
have no store identity. Use --settings-key to render them against a
different LLM settings collection.

Examples:
  persona builtins
  persona builtins --type SimpleChat
  persona builtins --settings-key my_settings --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuiltins(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "filter by assistant type (SimpleChat|Agent|Ask)")
	cmd.Flags().StringVar(&opts.SettingsKey, "settings-key", "", "LLM settings key to render (default: catalog default)")

	return cmd
}

func runBuiltins(opts *BuiltinsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	typ := assistant.Type(opts.Type)
	if opts.Type != "" && !typ.Valid() {
		return fail(formatter, assistant.NewInvalidRecordError(
			fmt.Sprintf("unknown assistant type %q", opts.Type)))
	}

	cat, err := newCatalog()
	if err != nil {
		return fail(formatter, err)
	}

	recs := cat.Fixed(opts.SettingsKey, typ)
	result := BuiltinsResult{
		CatalogVersion: cat.Version(),
		Assistants:     recs,
		Count:          len(recs),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Builtin personas (catalog v%d): %d\n", result.CatalogVersion, result.Count)
	fmt.Fprintln(w)
	for _, rec := range recs {
		fmt.Fprintf(w, "  %-12s  %s\n", rec.Type, rec.Name)
	}
	return nil
}
