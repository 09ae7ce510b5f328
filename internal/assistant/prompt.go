package assistant

import "strings"

// braceEscaper doubles literal braces so downstream placeholder substitution
// treats prior-turn text as inert instead of re-interpreting it.
var braceEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// EscapeBraces returns s with every "{" doubled to "{{" and every "}" to
// "}}". Applying it twice quadruples braces; callers escape exactly once.
func EscapeBraces(s string) string {
	return braceEscaper.Replace(s)
}

// BuildPrompt assembles the ordered message sequence for an LLM call:
// the persona's system prompt, then the prior turns with their content
// brace-escaped, then the persona's user prompt template verbatim, with
// its placeholder tokens still unresolved.
//
// The input history is never mutated. An empty history yields exactly two
// messages. BuildPrompt fails only on a nil record; it never touches
// storage.
func BuildPrompt(rec *Assistant, history []ChatMessage) ([]ChatMessage, error) {
	if rec == nil {
		return nil, NewInvalidRecordError("cannot build a prompt from a nil assistant record")
	}
	msgs := make([]ChatMessage, 0, len(history)+2)
	msgs = append(msgs, ChatMessage{Role: RoleSystem, Content: rec.SystemPrompt})
	for _, m := range history {
		msgs = append(msgs, ChatMessage{Role: m.Role, Content: EscapeBraces(m.Content)})
	}
	msgs = append(msgs, ChatMessage{Role: RoleUser, Content: rec.UserPromptTemplate})
	return msgs, nil
}
