package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/mirrordesk/persona/internal/assistant"
)

// InsertAssistant adds a new persona row and returns its local id. The name
// is NFC-normalized before it reaches the unique constraint. The caller
// supplies the write time; created_at and updated_at both take it.
//
// A collision on the unique name constraint returns DuplicateName; the
// wrapped cause stays attached for diagnostics.
func (s *Store) InsertAssistant(ctx context.Context, def assistant.Definition, now time.Time) (int64, error) {
	name := assistant.NormalizeName(def.Name)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO assistants
		(name, type, archived, system_prompt_template, user_prompt_template, llm_settings_collection_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		name,
		string(def.Type),
		def.Archived,
		def.SystemPrompt,
		def.UserPromptTemplate,
		def.LLMSettingsKey,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, assistant.NewDuplicateNameError(name, err)
		}
		return 0, fmt.Errorf("insert assistant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert assistant: last insert id: %w", err)
	}
	return id, nil
}

// UpdateAssistant overwrites every mutable field of the row id names,
// refreshing updated_at and preserving created_at. Updating an id with no
// row returns NotFound; renaming onto an existing name returns
// DuplicateName.
func (s *Store) UpdateAssistant(ctx context.Context, id int64, def assistant.Definition, now time.Time) error {
	name := assistant.NormalizeName(def.Name)

	result, err := s.db.ExecContext(ctx, `
		UPDATE assistants
		SET name = ?, type = ?, archived = ?, system_prompt_template = ?, user_prompt_template = ?, llm_settings_collection_key = ?, updated_at = ?
		WHERE id = ?
	`,
		name,
		string(def.Type),
		def.Archived,
		def.SystemPrompt,
		def.UserPromptTemplate,
		def.LLMSettingsKey,
		now,
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return assistant.NewDuplicateNameError(name, err)
		}
		return fmt.Errorf("update assistant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update assistant: rows affected: %w", err)
	}
	if affected == 0 {
		return assistant.NewUpdateTargetError(id)
	}
	return nil
}

// RecordSeed notes that a catalog version has seeded this store.
// Uses ON CONFLICT DO NOTHING for idempotency - repeat seedings with the
// same catalog version are silently ignored.
func (s *Store) RecordSeed(ctx context.Context, catalogVersion int64, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO seed_history (catalog_version, seeded_at)
		VALUES (?, ?)
		ON CONFLICT(catalog_version) DO NOTHING
	`, catalogVersion, now)
	if err != nil {
		return fmt.Errorf("record seed: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is SQLite's unique constraint
// failure. The extended code distinguishes it from other constraint
// violations such as NOT NULL.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
