// Package catalog loads the builtin persona catalog embedded in the binary.
//
// The catalog is an immutable, versioned set of persona templates written in
// CUE. It is parsed once at process start and handed to the seeder and the
// CLI as a read-only content provider; nothing mutates it afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/mirrordesk/persona/internal/assistant"
)

//go:embed builtin.cue
var builtinCUE string

// BaselineID is the well-known local id the baseline persona occupies in a
// freshly seeded global store. It is the first seeded row, so the synthetic
// fallback record and the persisted one share the identity "global_1".
const BaselineID int64 = 1

// Entry is one builtin persona template. Seed marks entries the seeder
// writes into the global store; the rest stay catalog-only.
type Entry struct {
	Key                string         `json:"key"`
	Name               string         `json:"name"`
	Type               assistant.Type `json:"type"`
	Seed               bool           `json:"seed"`
	SystemPrompt       string         `json:"system_prompt"`
	UserPromptTemplate string         `json:"user_prompt_template"`
}

// Catalog is the parsed, immutable persona catalog.
type Catalog struct {
	version     int64
	settingsKey string
	baselineKey string
	entries     []Entry
	byKey       map[string]int
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded catalog document once per process and returns
// the shared instance. The catalog is immutable, so every caller may hold
// the same pointer.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(builtinCUE)
	})
	return loaded, loadErr
}

// Parse compiles a catalog document from CUE source. The document must
// carry a version, a default settings key, a baseline entry reference, and
// at least one persona; every persona needs a name, a vocabulary type, and
// both prompt texts.
func Parse(src string) (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	c := &Catalog{byKey: make(map[string]int)}

	versionVal := v.LookupPath(cue.ParsePath("version"))
	if !versionVal.Exists() {
		return nil, &CompileError{Field: "version", Message: "catalog version is required", Pos: v.Pos()}
	}
	version, err := versionVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	c.version = version

	keyVal := v.LookupPath(cue.ParsePath("settings_key"))
	if !keyVal.Exists() {
		return nil, &CompileError{Field: "settings_key", Message: "default settings key is required", Pos: v.Pos()}
	}
	c.settingsKey, err = keyVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	baselineVal := v.LookupPath(cue.ParsePath("baseline"))
	if !baselineVal.Exists() {
		return nil, &CompileError{Field: "baseline", Message: "baseline entry key is required", Pos: v.Pos()}
	}
	c.baselineKey, err = baselineVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	if err := c.parsePersonas(v); err != nil {
		return nil, err
	}
	if len(c.entries) == 0 {
		return nil, &CompileError{Field: "persona", Message: "at least one persona is required", Pos: v.Pos()}
	}
	if _, ok := c.byKey[c.baselineKey]; !ok {
		return nil, &CompileError{
			Field:   "baseline",
			Message: fmt.Sprintf("baseline %q does not name a persona entry", c.baselineKey),
			Pos:     baselineVal.Pos(),
		}
	}
	return c, nil
}

// parsePersonas walks the persona struct in source order, which is also the
// order the seeder writes entries. Names are NFC-normalized here so the
// catalog cannot smuggle two encodings of one name past the uniqueness
// checks downstream.
func (c *Catalog) parsePersonas(v cue.Value) error {
	personaVal := v.LookupPath(cue.ParsePath("persona"))
	if !personaVal.Exists() {
		return nil
	}

	iter, err := personaVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}

	seenNames := make(map[string]string)
	for iter.Next() {
		key := iter.Label()
		entryVal := iter.Value()

		entry := Entry{Key: key}

		name, err := requiredString(entryVal, "name", key)
		if err != nil {
			return err
		}
		entry.Name = assistant.NormalizeName(name)
		if entry.Name == "" {
			return &CompileError{
				Field:   fmt.Sprintf("persona.%s.name", key),
				Message: "persona name must not be empty",
				Pos:     entryVal.Pos(),
			}
		}

		typeStr, err := requiredString(entryVal, "type", key)
		if err != nil {
			return err
		}
		entry.Type, err = assistant.ParseType(typeStr)
		if err != nil {
			return &CompileError{
				Field:   fmt.Sprintf("persona.%s.type", key),
				Message: err.Error(),
				Pos:     entryVal.Pos(),
			}
		}

		entry.SystemPrompt, err = requiredString(entryVal, "system_prompt", key)
		if err != nil {
			return err
		}
		entry.UserPromptTemplate, err = requiredString(entryVal, "user_prompt_template", key)
		if err != nil {
			return err
		}

		seedVal := entryVal.LookupPath(cue.ParsePath("seed"))
		if seedVal.Exists() {
			entry.Seed, err = seedVal.Bool()
			if err != nil {
				return formatCUEError(err)
			}
		}

		if prev, dup := seenNames[entry.Name]; dup {
			return &CompileError{
				Field:   fmt.Sprintf("persona.%s.name", key),
				Message: fmt.Sprintf("name %q already used by persona %q", entry.Name, prev),
				Pos:     entryVal.Pos(),
			}
		}
		seenNames[entry.Name] = key

		c.byKey[key] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
	return nil
}

// requiredString reads a mandatory string field from a persona entry.
func requiredString(v cue.Value, field, key string) (string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return "", &CompileError{
			Field:   fmt.Sprintf("persona.%s.%s", key, field),
			Message: fmt.Sprintf("%s is required", field),
			Pos:     v.Pos(),
		}
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// Version reports the catalog document version.
func (c *Catalog) Version() int64 {
	return c.version
}

// SettingsKey returns the catalog's default LLM settings collection key.
func (c *Catalog) SettingsKey() string {
	return c.settingsKey
}

// Entries returns all templates in document order. The slice is a copy;
// callers may reorder it freely.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the template with the given key.
func (c *Catalog) Entry(key string) (Entry, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// SeedSet returns the templates the seeder must guarantee exist, in
// document order.
func (c *Catalog) SeedSet() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Seed {
			out = append(out, e)
		}
	}
	return out
}

// Fixed materializes templates as unpersisted assistant records, optionally
// filtered by type. An empty settingsKey falls back to the catalog default.
// Returned records carry no store identity and zero timestamps.
func (c *Catalog) Fixed(settingsKey string, typ assistant.Type) []assistant.Assistant {
	if settingsKey == "" {
		settingsKey = c.settingsKey
	}
	out := make([]assistant.Assistant, 0, len(c.entries))
	for _, e := range c.entries {
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, assistant.Assistant{
			Name:               e.Name,
			Type:               e.Type,
			SystemPrompt:       e.SystemPrompt,
			UserPromptTemplate: e.UserPromptTemplate,
			LLMSettingsKey:     settingsKey,
		})
	}
	return out
}

// Baseline returns the synthetic fallback record served when a lookup has
// no scoped key: the baseline template wearing the well-known identity
// "global_1". It is built fresh on every call and never touches storage;
// zero timestamps mark it as a template rather than a row.
func (c *Catalog) Baseline() assistant.Assistant {
	e := c.entries[c.byKey[c.baselineKey]]
	return assistant.Assistant{
		ID:                 BaselineID,
		ScopedID:           assistant.GlobalID(BaselineID),
		Name:               e.Name,
		Type:               e.Type,
		SystemPrompt:       e.SystemPrompt,
		UserPromptTemplate: e.UserPromptTemplate,
		LLMSettingsKey:     c.settingsKey,
	}
}
