package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirrordesk/persona/internal/assistant"
)

// ArchiveOptions holds flags for the archive command.
type ArchiveOptions struct {
	*RootOptions
	Org     int64
	Restore bool
}

// ArchiveResult holds the archive command output.
type ArchiveResult struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

// NewArchiveCommand creates the archive command.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArchiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "archive <key>",
		Short: "Archive or restore an assistant",
		Long: `Mark an assistant as archived, or restore it with --restore.

Archiving is a soft flag: the record stays in its store, keeps its key,
and still resolves through get and list. Downstream pickers use the flag
to hide retired personas.

Examples:
  persona archive global_3
  persona archive org_2 --org 42
  persona archive global_3 --restore`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Org, "org", 0, "org id for resolving org-scoped keys")
	cmd.Flags().BoolVar(&opts.Restore, "restore", false, "clear the archived flag instead of setting it")

	return cmd
}

func runArchive(opts *ArchiveOptions, rawKey string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	key, err := assistant.ParseScopedID(rawKey)
	if err != nil {
		return fail(formatter, err)
	}

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
	rec, err := repo.Get(ctx, rawKey, org)
	if err != nil {
		return fail(formatter, err)
	}

	def := assistant.Definition{
		ID:                 &rec.ID,
		Name:               rec.Name,
		Type:               rec.Type,
		Archived:           !opts.Restore,
		SystemPrompt:       rec.SystemPrompt,
		UserPromptTemplate: rec.UserPromptTemplate,
		LLMSettingsKey:     rec.LLMSettingsKey,
	}

	// The write must land in the store the key resolved against: only an
	// org-scoped key reaches an org store.
	writeOrg := org
	if key.Scope != assistant.ScopeOrg {
		writeOrg = nil
	}
	if _, err := repo.CreateOrUpdate(ctx, def, writeOrg); err != nil {
		return fail(formatter, err)
	}

	result := ArchiveResult{
		Key:      key.String(),
		Name:     rec.Name,
		Archived: def.Archived,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	verb := "Archived"
	if opts.Restore {
		verb = "Restored"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %q (%s)\n", verb, result.Name, result.Key)
	return nil
}
