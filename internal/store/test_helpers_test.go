package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mirrordesk/persona/internal/assistant"
	"github.com/mirrordesk/persona/internal/catalog"
	"github.com/mirrordesk/persona/internal/testutil"
)

// testCatalogCUE is a minimal catalog document for repository tests: two
// seeded entries plus one catalog-only template. Keeping it local makes the
// tests independent of the embedded builtin catalog's contents.
const testCatalogCUE = `
version: 7
settings_key: "test_settings"
baseline: "baseline"

persona: "baseline": {
	name:                 "Baseline Q&A"
	type:                 "SimpleChat"
	seed:                 true
	system_prompt:        "You answer questions."
	user_prompt_template: "Context: {context_str} Query: {query_str}"
}

persona: "helper": {
	name:                 "Helper"
	type:                 "Ask"
	seed:                 true
	system_prompt:        "You help."
	user_prompt_template: "Q: {query_str}"
}

persona: "template-only": {
	name:                 "Catalog Only"
	type:                 "Agent"
	system_prompt:        "Catalog template, never seeded."
	user_prompt_template: "{context_str} {query_str}"
}
`

// seedNames are the catalog entries the seeder writes, in catalog order.
var seedNames = []string{"Baseline Q&A", "Helper"}

// newTestStore opens a store on a fresh temp database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assistants.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testCatalog parses the test catalog document.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse(testCatalogCUE)
	if err != nil {
		t.Fatalf("parse test catalog: %v", err)
	}
	return cat
}

// newTestRepository wires a repository over a fresh temp data root with the
// test catalog and a deterministic one-second-stepping clock.
func newTestRepository(t *testing.T) (*Repository, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(time.Second)
	repo := NewRepository(FilesystemLocator{Root: t.TempDir()}, testCatalog(t), WithClock(clock))
	return repo, clock
}

// testDefinition returns a valid insert definition with the given name.
func testDefinition(name string, typ assistant.Type) assistant.Definition {
	return assistant.Definition{
		Name:               name,
		Type:               typ,
		SystemPrompt:       "You are " + name + ".",
		UserPromptTemplate: "Context: {context_str} Query: {query_str}",
		LLMSettingsKey:     "test_settings",
	}
}

// orgID returns a pointer to id for use as an org context argument.
func orgID(id int64) *int64 {
	return &id
}
