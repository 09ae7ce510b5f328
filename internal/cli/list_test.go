package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrordesk/persona/internal/assistant"
)

func TestListGlobalSeedsOnFirstUse(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Assistants in global store: 3")
	for _, name := range seededNames {
		assert.Contains(t, output, name)
	}
	assert.Contains(t, output, "global_1")
	assert.Contains(t, output, "global_3")
	// Catalog-only entries never reach a store.
	assert.NotContains(t, output, "Meeting Assistant")
}

func TestListJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "json")
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	resp := decodeResponse(t, buf)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-1", resp.TraceID)

	var result ListResult
	decodeData(t, resp, &result)
	assert.Equal(t, "global", result.Store)
	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Assistants, 3)
	assert.Equal(t, "General Q&A", result.Assistants[0].Name)
	assert.Equal(t, assistant.GlobalID(1), result.Assistants[0].ScopedID)
	assert.Equal(t, "Elon Musk", result.Assistants[2].Name)
}

func TestListOrgStoreEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--org", "42"})

	err := cmd.Execute()
	require.NoError(t, err)

	// Org stores are never auto-seeded.
	assert.Contains(t, buf.String(), "No assistants in org_42 store")
}

func TestListTypeFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--type", "Ask"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Assistants in global store: 1")
	assert.Contains(t, output, "General Q&A Assistant")
	assert.NotContains(t, output, "Elon Musk")
}

func TestListInvalidType(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--type", "Wizard"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E105]")
	assert.Contains(t, buf.String(), "Wizard")
}

func TestListStorageUnavailable(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "json")
	rootOpts.DataDir = brokenDataDir(t)
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, buf)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeStorage, resp.Error.Code)
}
