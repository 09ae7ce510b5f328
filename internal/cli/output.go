package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mirrordesk/persona/internal/assistant"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (record not found, duplicate name, malformed key, etc.)
	ExitCommandError = 2 // Command error (unreadable files, unavailable storage, bad flags)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess (0) for nil and ExitFailure (1) if the error is not
// an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	TraceID   string // correlation id stamped on every JSON response
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string      `json:"status"`             // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`     // success payload
	Error   *CLIError   `json:"error,omitempty"`    // error details
	TraceID string      `json:"trace_id,omitempty"` // trace correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E101", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// fail renders err in the configured format and converts it into the
// ExitError the command surfaces. Domain failures exit 1; environment
// problems such as unreadable files or unavailable storage exit 2.
func fail(f *OutputFormatter, err error) error {
	code, exitCode := classifyError(err)
	_ = f.Error(code, errorMessage(err), errorDetails(err))
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, errorMessage(err)))
}

// classifyError maps an error onto its CLI code and exit code.
func classifyError(err error) (string, int) {
	switch assistant.CodeOf(err) {
	case assistant.ErrCodeNotFound:
		return ErrCodeNotFound, ExitFailure
	case assistant.ErrCodeDuplicateName:
		return ErrCodeDuplicateName, ExitFailure
	case assistant.ErrCodeMalformedKey:
		return ErrCodeMalformedKey, ExitFailure
	case assistant.ErrCodeInvalidRecord:
		return ErrCodeInvalidRecord, ExitFailure
	case assistant.ErrCodeStorageUnavailable:
		return ErrCodeStorage, ExitCommandError
	}

	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, ExitCommandError
	}
	return ErrCodeGeneric, ExitCommandError
}

// errorMessage extracts the human-readable message without the taxonomy
// prefix that Error() bakes in.
func errorMessage(err error) string {
	var perr *assistant.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Message
	}
	return err.Error()
}

// errorDetails pulls the structured context off a persona store error for
// the JSON details field: the offending key, name, or store path.
func errorDetails(err error) interface{} {
	var perr *assistant.Error
	if !errors.As(err, &perr) {
		return nil
	}
	d := map[string]string{}
	if perr.Key != "" {
		d["key"] = perr.Key
	}
	if perr.Name != "" {
		d["name"] = perr.Name
	}
	if perr.Path != "" {
		d["path"] = perr.Path
	}
	if len(d) == 0 {
		return nil
	}
	return d
}
