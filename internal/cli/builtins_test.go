package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrordesk/persona/internal/assistant"
)

func TestBuiltinsText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewBuiltinsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Builtin personas (catalog v1): 4")
	for _, name := range seededNames {
		assert.Contains(t, output, name)
	}
	// Catalog-only entries show up here even though they are never seeded.
	assert.Contains(t, output, "Meeting Assistant")
}

func TestBuiltinsNeverTouchesStorage(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	rootOpts.DataDir = brokenDataDir(t)
	cmd := NewBuiltinsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	// The catalog is embedded in the binary; a dead data dir is irrelevant.
	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Builtin personas (catalog v1): 4")
}

func TestBuiltinsTypeFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewBuiltinsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--type", "Ask"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Builtin personas (catalog v1): 2")
	assert.Contains(t, output, "General Q&A Assistant")
	assert.Contains(t, output, "Meeting Assistant")
	assert.NotContains(t, output, "Elon Musk")
}

func TestBuiltinsInvalidType(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewBuiltinsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--type", "Wizard"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E105]")
}

func TestBuiltinsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "json")
	cmd := NewBuiltinsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	resp := decodeResponse(t, buf)
	assert.Equal(t, "ok", resp.Status)

	var result BuiltinsResult
	decodeData(t, resp, &result)
	assert.Equal(t, int64(1), result.CatalogVersion)
	assert.Equal(t, 4, result.Count)
	require.Len(t, result.Assistants, 4)

	first := result.Assistants[0]
	assert.Equal(t, "General Q&A", first.Name)
	assert.Equal(t, assistant.TypeSimpleChat, first.Type)
	assert.Equal(t, "azure_openai_with_local_embedding", first.LLMSettingsKey)
	// Catalog records carry no store identity.
	assert.Zero(t, first.ID)
	assert.True(t, first.ScopedID.IsZero())
	assert.True(t, first.CreatedAt.IsZero())
}

func TestBuiltinsSettingsKeyOverride(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "json")
	cmd := NewBuiltinsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--settings-key", "my_local_settings"})

	err := cmd.Execute()
	require.NoError(t, err)

	var result BuiltinsResult
	decodeData(t, decodeResponse(t, buf), &result)
	for _, rec := range result.Assistants {
		assert.Equal(t, "my_local_settings", rec.LLMSettingsKey)
	}
}
