package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirrordesk/persona/internal/assistant"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	File string
	Org  int64
}

// CreateResult holds the create command output.
type CreateResult struct {
	Action string `json:"action"` // "created" or "updated"
	Key    string `json:"key"`
	Name   string `json:"name"`
	Store  string `json:"store"`
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create or update an assistant from a YAML definition",
		Long: `Create a new assistant, or update an existing one, from a YAML
definition file.

A definition without an id inserts a new record; one carrying an id
overwrites the record that id names in the target store. Names are
unique per store.

Definition file format:
  name: Research Helper
  type: Ask
  system_prompt: You answer questions using the provided context.
  user_prompt_template: "Context: {context_str} Query: {query_str}"
  llm_settings_key: azure_openai_with_local_embedding

Examples:
  persona create -f helper.yaml
  persona create -f helper.yaml --org 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to YAML definition (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().Int64Var(&opts.Org, "org", 0, "org id (omit to target the global store)")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	def, err := LoadDefinition(opts.File)
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
	id, err := repo.CreateOrUpdate(ctx, def, org)
	if err != nil {
		return fail(formatter, err)
	}

	key := assistant.GlobalID(id)
	if org != nil {
		key = assistant.OrgID(id)
	}
	verb := "Created"
	if def.ID != nil {
		verb = "Updated"
	}

	result := CreateResult{
		Action: strings.ToLower(verb),
		Key:    key.String(),
		Name:   assistant.NormalizeName(def.Name),
		Store:  storeLabel(org),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %q as %s in %s store\n",
		verb, result.Name, result.Key, result.Store)
	return nil
}
