package assistant

import (
	"fmt"
	"strconv"
	"strings"
)

// Scope names which physical store a record lives in.
type Scope string

const (
	// ScopeGlobal addresses the single shared store visible to every org.
	ScopeGlobal Scope = "global"
	// ScopeOrg addresses one organization's private store.
	ScopeOrg Scope = "org"
)

// Valid reports whether s is a member of the scope vocabulary.
func (s Scope) Valid() bool {
	return s == ScopeGlobal || s == ScopeOrg
}

// scopeSeparator joins the scope tag and the local id in the wire form.
const scopeSeparator = "_"

// ScopedID is the scope-qualified identity of an assistant: which store it
// lives in plus its local row id there. The wire form is "<scope>_<id>",
// e.g. "global_3" or "org_12". Construct values through GlobalID, OrgID, or
// ParseScopedID; the zero value has no wire form.
type ScopedID struct {
	Scope Scope
	ID    int64
}

// GlobalID returns the scoped identity of row id in the shared store.
func GlobalID(id int64) ScopedID {
	return ScopedID{Scope: ScopeGlobal, ID: id}
}

// OrgID returns the scoped identity of row id in an org store. The key
// carries no org number; which org store it resolves against is decided by
// the caller's org context at lookup time.
func OrgID(id int64) ScopedID {
	return ScopedID{Scope: ScopeOrg, ID: id}
}

// ParseScopedID decodes the wire form. It is the exact inverse of String
// for every value the constructors can produce: the scope tag must be in
// the vocabulary and the id must be a bare non-negative decimal.
func ParseScopedID(raw string) (ScopedID, error) {
	tag, num, ok := strings.Cut(raw, scopeSeparator)
	if !ok {
		return ScopedID{}, NewMalformedKeyError(raw, "missing scope separator")
	}
	scope := Scope(tag)
	if !scope.Valid() {
		return ScopedID{}, NewMalformedKeyError(raw, fmt.Sprintf("unknown scope %q", tag))
	}
	id, err := strconv.ParseUint(num, 10, 63)
	if err != nil {
		return ScopedID{}, NewMalformedKeyError(raw, fmt.Sprintf("local id %q is not a decimal integer", num))
	}
	return ScopedID{Scope: scope, ID: int64(id)}, nil
}

// String returns the wire form, or "" for the zero value.
func (s ScopedID) String() string {
	if s.Scope == "" {
		return ""
	}
	return string(s.Scope) + scopeSeparator + strconv.FormatInt(s.ID, 10)
}

// IsZero reports whether s carries no identity.
func (s ScopedID) IsZero() bool {
	return s.Scope == ""
}

// MarshalText encodes s in its wire form so ScopedID embeds cleanly in JSON
// and YAML documents.
func (s ScopedID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the wire form in place. An empty input restores the
// zero value, matching what MarshalText emits for it.
func (s *ScopedID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ScopedID{}
		return nil
	}
	parsed, err := ParseScopedID(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
