package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirrordesk/persona/internal/assistant"
)

// PreviewOptions holds flags for the preview command.
type PreviewOptions struct {
	*RootOptions
	Org     int64
	History string
}

// PreviewResult holds the preview command output.
type PreviewResult struct {
	Key      string                  `json:"key"`
	Name     string                  `json:"name"`
	Messages []assistant.ChatMessage `json:"messages"`
	Count    int                     `json:"count"`
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PreviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "preview [key]",
		Short: "Assemble the prompt sequence for an assistant",
		Long: `Assemble the ordered chat messages an LLM call for this assistant
would send: the system prompt, then the prior conversation turns with
their braces escaped, then the user prompt template with its
placeholder tokens left unresolved.

Without a key, the baseline persona is used; it resolves even when no
store has ever been seeded. Prior turns come from an optional YAML
history file:

  - role: user
    content: What does this error mean?
  - role: assistant
    content: The brace in {config} was never closed.

Examples:
  persona preview
  persona preview global_2
  persona preview org_1 --org 42 --history chat.yaml --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rawKey := ""
			if len(args) == 1 {
				rawKey = args[0]
			}
			return runPreview(opts, rawKey, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Org, "org", 0, "org id for resolving org-scoped keys")
	cmd.Flags().StringVar(&opts.History, "history", "", "path to YAML conversation history")

	return cmd
}

func runPreview(opts *PreviewOptions, rawKey string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var history []assistant.ChatMessage
	if opts.History != "" {
		msgs, err := LoadHistory(opts.History)
		if err != nil {
			return fail(formatter, err)
		}
		history = msgs
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

	rec, err := repo.GetOrDefault(ctx, rawKey, orgScope(cmd, opts.Org))
	if err != nil {
		return fail(formatter, err)
	}

	msgs, err := assistant.BuildPrompt(&rec, history)
	if err != nil {
		return fail(formatter, err)
	}

	result := PreviewResult{
		Key:      rec.ScopedID.String(),
		Name:     rec.Name,
		Messages: msgs,
		Count:    len(msgs),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Prompt for %q (%s): %d message(s)\n", result.Name, result.Key, result.Count)
	for _, m := range msgs {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "[%s]\n", m.Role)
		fmt.Fprintln(w, m.Content)
	}
	return nil
}
