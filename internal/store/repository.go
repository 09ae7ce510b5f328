package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mirrordesk/persona/internal/assistant"
	"github.com/mirrordesk/persona/internal/catalog"
)

// Repository implements the persona operations over the per-scope stores.
// Each operation opens its own connection to the target store and closes it
// on every exit path.
//
// The first operation that needs storage also runs the default seeder
// against the global store, once per process. Org stores are provisioned on
// first use and seeded only on demand.
type Repository struct {
	locator Locator
	catalog *catalog.Catalog
	clock   Clock

	seedMu sync.Mutex
	seeded bool
}

// RepositoryOption configures optional repository behavior.
type RepositoryOption func(*Repository)

// WithClock substitutes the timestamp source for writes.
//
// Default: SystemClock (wall clock, UTC).
// Tests use a stepping clock to make created_at/updated_at exact.
func WithClock(c Clock) RepositoryOption {
	return func(r *Repository) {
		r.clock = c
	}
}

// NewRepository wires a repository to its store locator and the builtin
// persona catalog. The catalog is consumed read-only: seeding content, the
// baseline record, and the recorded catalog version all come from it.
func NewRepository(locator Locator, cat *catalog.Catalog, opts ...RepositoryOption) *Repository {
	r := &Repository{
		locator: locator,
		catalog: cat,
		clock:   SystemClock{},
	}

	// Apply options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// CreateOrUpdate inserts def as a new record when def.ID is nil, otherwise
// overwrites the record def.ID names. Returns the record's local id within
// its store. Writes go to the org store when orgID is set, the global store
// otherwise.
//
// Inserts stamp created_at = updated_at = now. Updates refresh updated_at,
// preserve created_at, and fail with NotFound when the id has no row.
// Concurrent updates to the same record are last-writer-wins.
func (r *Repository) CreateOrUpdate(ctx context.Context, def assistant.Definition, orgID *int64) (int64, error) {
	if err := def.Validate(); err != nil {
		return 0, err
	}
	if err := r.ensureGlobalSeeded(ctx); err != nil {
		return 0, err
	}

	path := r.resolvePath(orgID)
	st, err := openStore(path)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	now := r.clock.Now().UTC()

	if def.ID == nil {
		id, err := st.InsertAssistant(ctx, def, now)
		if err != nil {
			return 0, err
		}
		slog.Debug("assistant created", "id", id, "name", def.Name, "store", path)
		return id, nil
	}

	if err := st.UpdateAssistant(ctx, *def.ID, def, now); err != nil {
		return 0, err
	}
	slog.Debug("assistant updated", "id", *def.ID, "name", def.Name, "store", path)
	return *def.ID, nil
}

// Get decodes rawKey and fetches the record it names. Org-scoped keys
// resolve against orgID's store when a context is supplied and fall back to
// the global store when it is not, so callers without an established org
// still resolve shared personas. The returned record carries the requested
// key as its scoped identity.
func (r *Repository) Get(ctx context.Context, rawKey string, orgID *int64) (assistant.Assistant, error) {
	key, err := assistant.ParseScopedID(rawKey)
	if err != nil {
		return assistant.Assistant{}, err
	}
	if err := r.ensureGlobalSeeded(ctx); err != nil {
		return assistant.Assistant{}, err
	}

	path := r.keyPath(key, orgID)
	st, err := openStore(path)
	if err != nil {
		return assistant.Assistant{}, err
	}
	defer st.Close()

	rec, err := st.GetAssistant(ctx, key.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return assistant.Assistant{}, assistant.NewNotFoundError(key)
		}
		return assistant.Assistant{}, fmt.Errorf("get %s: %w", key, err)
	}

	rec.ScopedID = key
	return rec, nil
}

// List returns every record in the resolved store in insertion order,
// optionally filtered by type, each stamped with its freshly computed
// scoped key. Archived records are included; archiving hides nothing from
// the repository.
func (r *Repository) List(ctx context.Context, orgID *int64, typ assistant.Type) ([]assistant.Assistant, error) {
	if typ != "" && !typ.Valid() {
		return nil, assistant.NewInvalidRecordError(fmt.Sprintf("unknown assistant type %q", string(typ)))
	}
	if err := r.ensureGlobalSeeded(ctx); err != nil {
		return nil, err
	}

	path := r.resolvePath(orgID)
	st, err := openStore(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	recs, err := st.ListAssistants(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	scope := assistant.ScopeGlobal
	if orgID != nil {
		scope = assistant.ScopeOrg
	}
	for i := range recs {
		recs[i].ScopedID = assistant.ScopedID{Scope: scope, ID: recs[i].ID}
	}
	return recs, nil
}

// GetOrDefault behaves like Get when rawKey is non-empty. With an empty key
// it returns the catalog's baseline record without touching storage, so it
// always succeeds and always yields the same value regardless of store
// contents.
func (r *Repository) GetOrDefault(ctx context.Context, rawKey string, orgID *int64) (assistant.Assistant, error) {
	if rawKey == "" {
		return r.catalog.Baseline(), nil
	}
	return r.Get(ctx, rawKey, orgID)
}

// Seed guarantees every catalog entry marked for seeding exists in the
// target store, inserting the absent ones with their canonical content.
// Returns the names it created, in catalog order.
//
// Seeding is idempotent: re-running inserts nothing new, and a
// DuplicateName lost to a concurrent seeder counts as success for the
// loser. All other errors propagate. The catalog version is recorded in
// the store's seed history afterwards.
func (r *Repository) Seed(ctx context.Context, orgID *int64) ([]string, error) {
	path := r.resolvePath(orgID)
	st, err := openStore(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	entries := r.catalog.SeedSet()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	existing, err := st.AssistantNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}

	created, err := r.seedMissing(ctx, st, existing)
	if err != nil {
		return nil, err
	}

	if err := st.RecordSeed(ctx, r.catalog.Version(), r.clock.Now().UTC()); err != nil {
		return nil, err
	}

	slog.Info("store seeded",
		"store", path,
		"catalog_version", r.catalog.Version(),
		"created", len(created))
	return created, nil
}

// seedMissing inserts every seed-set entry absent from existing. A
// DuplicateName during the insert means another seeder landed the row
// between the existence check and ours; the row exists, which is all the
// seeder guarantees, so the loser skips it. Every other error propagates.
func (r *Repository) seedMissing(ctx context.Context, st *Store, existing map[string]bool) ([]string, error) {
	created := []string{}
	for _, e := range r.catalog.SeedSet() {
		if existing[e.Name] {
			continue
		}
		def := assistant.Definition{
			Name:               e.Name,
			Type:               e.Type,
			SystemPrompt:       e.SystemPrompt,
			UserPromptTemplate: e.UserPromptTemplate,
			LLMSettingsKey:     r.catalog.SettingsKey(),
		}
		if _, err := st.InsertAssistant(ctx, def, r.clock.Now().UTC()); err != nil {
			if assistant.IsDuplicateName(err) {
				slog.Debug("seed race lost, entry already present", "name", e.Name, "store", st.Path())
				continue
			}
			return nil, err
		}
		created = append(created, e.Name)
	}
	return created, nil
}

// SeedHistory returns the seed audit trail of the resolved store.
func (r *Repository) SeedHistory(ctx context.Context, orgID *int64) ([]SeedRecord, error) {
	path := r.resolvePath(orgID)
	st, err := openStore(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	seeds, err := st.SeedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed history %s: %w", path, err)
	}
	return seeds, nil
}

// ensureGlobalSeeded runs the default seeder against the global store the
// first time an operation needs storage. Only success latches; a failed
// attempt is retried by the next operation, so a transient storage fault
// cannot wedge the repository.
func (r *Repository) ensureGlobalSeeded(ctx context.Context) error {
	r.seedMu.Lock()
	defer r.seedMu.Unlock()
	if r.seeded {
		return nil
	}
	if _, err := r.Seed(ctx, nil); err != nil {
		return err
	}
	r.seeded = true
	return nil
}

// resolvePath picks the store an operation without a scoped key addresses:
// the org store when an org context is present, the global store otherwise.
func (r *Repository) resolvePath(orgID *int64) string {
	if orgID != nil {
		return r.locator.OrgPath(*orgID)
	}
	return r.locator.GlobalPath()
}

// keyPath picks the store a scoped key addresses. Only an org-scoped key
// with an org context reaches an org store; everything else resolves to the
// global store.
func (r *Repository) keyPath(key assistant.ScopedID, orgID *int64) string {
	if key.Scope == assistant.ScopeOrg && orgID != nil {
		return r.locator.OrgPath(*orgID)
	}
	return r.locator.GlobalPath()
}

// openStore opens the database at path, mapping open failures onto the
// storage taxonomy so callers see STORAGE_UNAVAILABLE with the path that
// failed.
func openStore(path string) (*Store, error) {
	st, err := Open(path)
	if err != nil {
		return nil, assistant.NewStorageError(path, err)
	}
	return st, nil
}
