package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mirrordesk/persona/internal/assistant"
)

// LoadError represents an error that occurred while loading a definition
// or history file.
type LoadError struct {
	Code    string
	Message string
	Path    string // offending file, when known
	Err     error  // underlying cause (optional)
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadDefinition reads an assistant definition from a YAML file.
// Unknown fields are rejected so typos surface as errors instead of
// silently dropping data, and the decoded definition is validated before
// it can reach a store.
func LoadDefinition(path string) (assistant.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return assistant.Definition{}, &LoadError{
			Code:    ErrCodeFileRead,
			Message: fmt.Sprintf("cannot read definition file: %v", err),
			Path:    path,
			Err:     err,
		}
	}
	defer f.Close()

	var def assistant.Definition
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&def); err != nil {
		return assistant.Definition{}, &LoadError{
			Code:    ErrCodeBadYAML,
			Message: fmt.Sprintf("malformed definition: %v", err),
			Path:    path,
			Err:     err,
		}
	}

	// Validation errors keep their domain taxonomy (INVALID_RECORD).
	if err := def.Validate(); err != nil {
		return assistant.Definition{}, err
	}
	return def, nil
}

// LoadHistory reads a conversation history from a YAML file: a sequence of
// role/content message pairs. Every role must come from the chat
// vocabulary.
func LoadHistory(path string) ([]assistant.ChatMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeFileRead,
			Message: fmt.Sprintf("cannot read history file: %v", err),
			Path:    path,
			Err:     err,
		}
	}
	defer f.Close()

	var msgs []assistant.ChatMessage
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&msgs); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBadYAML,
			Message: fmt.Sprintf("malformed history: %v", err),
			Path:    path,
			Err:     err,
		}
	}

	for i, m := range msgs {
		switch m.Role {
		case assistant.RoleSystem, assistant.RoleUser, assistant.RoleAssistant:
		default:
			return nil, &LoadError{
				Code:    ErrCodeBadYAML,
				Message: fmt.Sprintf("message %d: unknown role %q", i, m.Role),
				Path:    path,
			}
		}
	}
	return msgs, nil
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeFileRead = "E002" // Definition or history file unreadable
	ErrCodeBadYAML  = "E003" // YAML syntax or schema error
	ErrCodeCatalog  = "E004" // Builtin catalog failed to load

	// Persona store taxonomy
	ErrCodeNotFound      = "E101" // NOT_FOUND
	ErrCodeDuplicateName = "E102" // DUPLICATE_NAME
	ErrCodeMalformedKey  = "E103" // MALFORMED_KEY
	ErrCodeStorage       = "E104" // STORAGE_UNAVAILABLE
	ErrCodeInvalidRecord = "E105" // INVALID_RECORD
)
