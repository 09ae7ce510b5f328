// Package store provides SQLite-backed storage for persona records.
//
// Records live in one database file per scope: a single global store shared
// by every caller, plus one store per organization. A Locator maps scopes
// to files; Store wraps one open file; Repository layers the persona
// operations (create-or-update, get, list, get-or-default, seed) over both.
//
// # Resource Model
//
// Every repository operation opens its own connection to the target store
// and closes it on all exit paths. Opening is idempotent: pragmas and
// schema are applied each time, so a store is usable the moment its path
// is known. Concurrent writers rely on SQLite's own locking; the only
// designed-for race is concurrent first-time seeding, which the unique
// name constraint resolves (the loser treats DuplicateName as success).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Write timestamps come from an injected Clock so tests can pin time.
// Persona names are NFC-normalized before they reach the unique constraint.
package store
