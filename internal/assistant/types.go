package assistant

import (
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Type classifies what an assistant is for. The persona core stores and
// returns the value opaquely; interpretation belongs to the chat layer.
type Type string

const (
	// TypeSimpleChat is a general conversational assistant.
	TypeSimpleChat Type = "SimpleChat"
	// TypeAgent is an assistant that can drive tool-calling flows.
	TypeAgent Type = "Agent"
	// TypeAsk is a question-answering assistant grounded on retrieved context.
	TypeAsk Type = "Ask"
)

// typeLabels maps each known Type to its human-readable label. The map is
// the single source of truth for the type vocabulary: membership here is
// what makes a Type valid, and parsing consults the inverse table rather
// than re-deriving values from string casing.
var typeLabels = map[Type]string{
	TypeSimpleChat: "Simple Chat",
	TypeAgent:      "Agent",
	TypeAsk:        "Ask",
}

// typesByName is the inverse of typeLabels, keyed by the stored
// representation.
var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeLabels))
	for t := range typeLabels {
		m[string(t)] = t
	}
	return m
}()

// ParseType maps a stored string back to a Type. Unknown values return an
// INVALID_RECORD error rather than leaking through as a zero Type.
func ParseType(s string) (Type, error) {
	t, ok := typesByName[s]
	if !ok {
		return "", NewInvalidRecordError(fmt.Sprintf("unknown assistant type %q", s))
	}
	return t, nil
}

// Valid reports whether t is a member of the type vocabulary.
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the human-readable label for t, or the raw value when t is
// outside the vocabulary.
func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Placeholder tokens that user prompt templates carry through the persona
// core unresolved. Substitution happens downstream, at LLM invocation time,
// where the retrieved context and the user query are known.
const (
	// PlaceholderContext marks where retrieved context text is substituted.
	PlaceholderContext = "{context_str}"
	// PlaceholderQuery marks where the end-user query text is substituted.
	PlaceholderQuery = "{query_str}"
)

// Role identifies the author of a chat message.
type Role string

const (
	// RoleSystem is the persona's system prompt.
	RoleSystem Role = "system"
	// RoleUser is a message authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant is a message authored by the model.
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single entry in an LLM conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Assistant is a persisted persona record. SystemPrompt is literal text;
// UserPromptTemplate still contains the unresolved placeholder tokens.
// LLMSettingsKey is an opaque reference into the model-settings collection;
// the persona core never checks that it resolves.
type Assistant struct {
	ID                 int64     `json:"id"`        // local id within its store
	ScopedID           ScopedID  `json:"scoped_id"` // scope-qualified identity
	Name               string    `json:"name"`
	Type               Type      `json:"type"`
	Archived           bool      `json:"archived"`
	SystemPrompt       string    `json:"system_prompt"`
	UserPromptTemplate string    `json:"user_prompt_template"`
	LLMSettingsKey     string    `json:"llm_settings_key"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Definition carries the caller-supplied fields for creating or updating an
// assistant. ID selects the update path when set; a nil ID always inserts.
type Definition struct {
	ID                 *int64 `yaml:"id" json:"id,omitempty"`
	Name               string `yaml:"name" json:"name"`
	Type               Type   `yaml:"type" json:"type"`
	Archived           bool   `yaml:"archived" json:"archived"`
	SystemPrompt       string `yaml:"system_prompt" json:"system_prompt"`
	UserPromptTemplate string `yaml:"user_prompt_template" json:"user_prompt_template"`
	LLMSettingsKey     string `yaml:"llm_settings_key" json:"llm_settings_key"`
}

// Validate checks d field by field at the boundary, before it can reach a
// store. Prompt text and the settings key may be empty; the name and a
// vocabulary type may not.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return NewInvalidRecordError("assistant name must not be empty")
	}
	if !d.Type.Valid() {
		return NewInvalidRecordError(fmt.Sprintf("unknown assistant type %q", string(d.Type)))
	}
	if d.ID != nil && *d.ID < 1 {
		return NewInvalidRecordError(fmt.Sprintf("assistant id must be positive, got %d", *d.ID))
	}
	return nil
}

// NormalizeName returns the NFC normalization of name. Stores apply this to
// every name they write and every name they compare, so composed and
// decomposed encodings of the same text collide on the uniqueness
// constraint instead of slipping past it.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}
