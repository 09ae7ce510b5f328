package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mirrordesk/persona/internal/catalog"
	"github.com/mirrordesk/persona/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DataDir string // root directory holding the global and org stores

	// TraceIDs allows overriding the trace id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	TraceIDs TraceIDGenerator

	// Clock allows overriding the repository timestamp source (for testing).
	// If nil, the repository uses the system clock.
	Clock store.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the persona CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "persona",
		Short: "Persona - scoped assistant store",
		Long: `Manage named LLM assistant personas across one shared global store and
per-organization stores, and assemble chat prompt sequences from them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "./data", "directory holding the persona stores")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewArchiveCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewBuiltinsCommand(opts))
	cmd.AddCommand(NewPreviewCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// configureLogging installs the process logger: text on stderr, debug level
// when verbose. Results go to stdout; logs never mix into them.
func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// newFormatter builds the output formatter for one command invocation,
// stamped with a fresh trace id.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	gen := opts.TraceIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		TraceID:   gen.Generate(),
	}
}

// newCatalog loads the builtin persona catalog.
func newCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeCatalog,
			Message: fmt.Sprintf("builtin catalog: %v", err),
			Err:     err,
		}
	}
	return cat, nil
}

// newRepository wires a repository over the stores under the configured
// data directory.
func newRepository(opts *RootOptions, cat *catalog.Catalog) *store.Repository {
	var ropts []store.RepositoryOption
	if opts.Clock != nil {
		ropts = append(ropts, store.WithClock(opts.Clock))
	}
	return store.NewRepository(store.FilesystemLocator{Root: opts.DataDir}, cat, ropts...)
}

// orgScope reports the org context of an invocation: nil when --org was not
// given, so org id 0 stays distinguishable from "no org".
func orgScope(cmd *cobra.Command, id int64) *int64 {
	if !cmd.Flags().Changed("org") {
		return nil
	}
	return &id
}

// storeLabel names the store an org context resolves to, for output.
func storeLabel(org *int64) string {
	if org == nil {
		return "global"
	}
	return fmt.Sprintf("org_%d", *org)
}
