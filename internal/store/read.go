package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mirrordesk/persona/internal/assistant"
)

// GetAssistant fetches one row by local id. Returns sql.ErrNoRows when the
// id has no row; the repository maps that onto the NotFound taxonomy with
// the scoped key it resolved. The returned record carries no scoped
// identity - only the caller knows which scope the lookup came from.
func (s *Store) GetAssistant(ctx context.Context, id int64) (assistant.Assistant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, archived, system_prompt_template, user_prompt_template, llm_settings_collection_key, created_at, updated_at
		FROM assistants
		WHERE id = ?
	`, id)

	return scanAssistantRow(row)
}

// ListAssistants returns rows in insertion order, optionally filtered by
// type. An empty typ means no filter.
//
// Returns an empty slice (not nil) if the store has no matching rows.
func (s *Store) ListAssistants(ctx context.Context, typ assistant.Type) ([]assistant.Assistant, error) {
	query := `
		SELECT id, name, type, archived, system_prompt_template, user_prompt_template, llm_settings_collection_key, created_at, updated_at
		FROM assistants
	`
	var args []any
	if typ != "" {
		query += " WHERE type = ?"
		args = append(args, string(typ))
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assistants: %w", err)
	}
	defer rows.Close()

	var recs []assistant.Assistant
	for rows.Next() {
		rec, err := scanAssistant(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assistants: %w", err)
	}

	// Return empty slice instead of nil
	if recs == nil {
		recs = []assistant.Assistant{}
	}

	return recs, nil
}

// AssistantNames reports which of the given names already have rows. The
// seeder uses it to find absent catalog entries in one query instead of one
// lookup per entry.
func (s *Store) AssistantNames(ctx context.Context, names []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(names))
	if len(names) == 0 {
		return existing, nil
	}

	// Build placeholder string for IN clause
	placeholders := make([]byte, 0, len(names)*2-1)
	args := make([]any, len(names))
	for i, name := range names {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args[i] = name
	}

	query := `SELECT name FROM assistants WHERE name IN (` + string(placeholders) + `)`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assistant names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan assistant name: %w", err)
		}
		existing[name] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assistant names: %w", err)
	}

	return existing, nil
}

// SeedRecord is one seed_history row: a catalog version and when it first
// seeded this store.
type SeedRecord struct {
	CatalogVersion int64     `json:"catalog_version"`
	SeededAt       time.Time `json:"seeded_at"`
}

// SeedVersions returns the seed audit trail, oldest catalog version first.
//
// Returns an empty slice (not nil) if the store has never been seeded.
func (s *Store) SeedVersions(ctx context.Context) ([]SeedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT catalog_version, seeded_at
		FROM seed_history
		ORDER BY catalog_version ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query seed history: %w", err)
	}
	defer rows.Close()

	var seeds []SeedRecord
	for rows.Next() {
		var rec SeedRecord
		if err := rows.Scan(&rec.CatalogVersion, &rec.SeededAt); err != nil {
			return nil, fmt.Errorf("scan seed record: %w", err)
		}
		seeds = append(seeds, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seed history: %w", err)
	}

	if seeds == nil {
		seeds = []SeedRecord{}
	}

	return seeds, nil
}

// scanAssistant scans a result set row into an Assistant. Text columns are
// nullable in the schema; NULL reads back as the empty string. A NULL or
// unrecognized type column is an INVALID_RECORD error rather than a zero
// Type leaking through.
func scanAssistant(rows *sql.Rows) (assistant.Assistant, error) {
	var (
		rec      assistant.Assistant
		name     sql.NullString
		typ      sql.NullString
		archived sql.NullBool
		system   sql.NullString
		user     sql.NullString
		settings sql.NullString
		created  sql.NullTime
		updated  sql.NullTime
	)

	if err := rows.Scan(&rec.ID, &name, &typ, &archived, &system, &user, &settings, &created, &updated); err != nil {
		return assistant.Assistant{}, fmt.Errorf("scan assistant: %w", err)
	}

	parsed, err := assistant.ParseType(typ.String)
	if err != nil {
		return assistant.Assistant{}, err
	}

	rec.Name = name.String
	rec.Type = parsed
	rec.Archived = archived.Bool
	rec.SystemPrompt = system.String
	rec.UserPromptTemplate = user.String
	rec.LLMSettingsKey = settings.String
	rec.CreatedAt = created.Time
	rec.UpdatedAt = updated.Time
	return rec, nil
}

// scanAssistantRow scans a single-row query into an Assistant. sql.ErrNoRows
// passes through untouched for the caller to classify.
func scanAssistantRow(row *sql.Row) (assistant.Assistant, error) {
	var (
		rec      assistant.Assistant
		name     sql.NullString
		typ      sql.NullString
		archived sql.NullBool
		system   sql.NullString
		user     sql.NullString
		settings sql.NullString
		created  sql.NullTime
		updated  sql.NullTime
	)

	if err := row.Scan(&rec.ID, &name, &typ, &archived, &system, &user, &settings, &created, &updated); err != nil {
		return assistant.Assistant{}, err
	}

	parsed, err := assistant.ParseType(typ.String)
	if err != nil {
		return assistant.Assistant{}, err
	}

	rec.Name = name.String
	rec.Type = parsed
	rec.Archived = archived.Bool
	rec.SystemPrompt = system.String
	rec.UserPromptTemplate = user.String
	rec.LLMSettingsKey = settings.String
	rec.CreatedAt = created.Time
	rec.UpdatedAt = updated.Time
	return rec, nil
}
