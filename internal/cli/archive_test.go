package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveGlobal(t *testing.T) {
	rootOpts := testRootOptions(t, "text")

	buf := &bytes.Buffer{}
	cmd := NewArchiveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"global_3"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `✓ Archived "Elon Musk" (global_3)`)

	// Archived records stay listed, marked.
	listBuf := &bytes.Buffer{}
	listCmd := NewListCommand(rootOpts)
	listCmd.SetOut(listBuf)
	listCmd.SetErr(listBuf)
	listCmd.SetArgs([]string{})
	require.NoError(t, listCmd.Execute())
	assert.Contains(t, listBuf.String(), "Elon Musk (archived)")
	assert.Contains(t, listBuf.String(), "Assistants in global store: 3")
}

func TestArchiveRestore(t *testing.T) {
	rootOpts := testRootOptions(t, "text")

	archiveBuf := &bytes.Buffer{}
	archiveCmd := NewArchiveCommand(rootOpts)
	archiveCmd.SetOut(archiveBuf)
	archiveCmd.SetErr(archiveBuf)
	archiveCmd.SetArgs([]string{"global_3"})
	require.NoError(t, archiveCmd.Execute())

	restoreBuf := &bytes.Buffer{}
	restoreCmd := NewArchiveCommand(rootOpts)
	restoreCmd.SetOut(restoreBuf)
	restoreCmd.SetErr(restoreBuf)
	restoreCmd.SetArgs([]string{"global_3", "--restore"})
	require.NoError(t, restoreCmd.Execute())
	assert.Contains(t, restoreBuf.String(), `✓ Restored "Elon Musk" (global_3)`)

	getBuf := &bytes.Buffer{}
	getCmd := NewGetCommand(rootOpts)
	getCmd.SetOut(getBuf)
	getCmd.SetErr(getBuf)
	getCmd.SetArgs([]string{"global_3"})
	require.NoError(t, getCmd.Execute())
	assert.Contains(t, getBuf.String(), "Archived: false")
}

func TestArchiveJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "json")
	cmd := NewArchiveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"global_1"})

	err := cmd.Execute()
	require.NoError(t, err)

	resp := decodeResponse(t, buf)
	assert.Equal(t, "ok", resp.Status)

	var result ArchiveResult
	decodeData(t, resp, &result)
	assert.Equal(t, "global_1", result.Key)
	assert.Equal(t, "General Q&A", result.Name)
	assert.True(t, result.Archived)
}

func TestArchiveNotFound(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewArchiveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"global_99"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E101]")
}

func TestArchiveMalformedKey(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := testRootOptions(t, "text")
	cmd := NewArchiveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E103]")
}

func TestArchiveOrgKeyTargetsOrgStore(t *testing.T) {
	rootOpts := testRootOptions(t, "text")
	defPath := writeFile(t, t.TempDir(), "helper.yaml", validDefinitionYAML)

	createBuf := &bytes.Buffer{}
	createCmd := NewCreateCommand(rootOpts)
	createCmd.SetOut(createBuf)
	createCmd.SetErr(createBuf)
	createCmd.SetArgs([]string{"-f", defPath, "--org", "42"})
	require.NoError(t, createCmd.Execute())

	archiveBuf := &bytes.Buffer{}
	archiveCmd := NewArchiveCommand(rootOpts)
	archiveCmd.SetOut(archiveBuf)
	archiveCmd.SetErr(archiveBuf)
	archiveCmd.SetArgs([]string{"org_1", "--org", "42"})
	require.NoError(t, archiveCmd.Execute())
	assert.Contains(t, archiveBuf.String(), `✓ Archived "Research Helper" (org_1)`)

	// The org row is archived...
	orgGetBuf := &bytes.Buffer{}
	orgGetCmd := NewGetCommand(rootOpts)
	orgGetCmd.SetOut(orgGetBuf)
	orgGetCmd.SetErr(orgGetBuf)
	orgGetCmd.SetArgs([]string{"org_1", "--org", "42"})
	require.NoError(t, orgGetCmd.Execute())
	assert.Contains(t, orgGetBuf.String(), "Archived: true")

	// ...and the global row with the same local id is untouched.
	globalGetBuf := &bytes.Buffer{}
	globalGetCmd := NewGetCommand(rootOpts)
	globalGetCmd.SetOut(globalGetBuf)
	globalGetCmd.SetErr(globalGetBuf)
	globalGetCmd.SetArgs([]string{"global_1"})
	require.NoError(t, globalGetCmd.Execute())
	assert.Contains(t, globalGetBuf.String(), "Archived: false")
}

func TestArchiveGlobalKeyIgnoresOrgContext(t *testing.T) {
	rootOpts := testRootOptions(t, "text")

	// A global key resolves against the global store even under --org, so
	// the write must land there too.
	archiveBuf := &bytes.Buffer{}
	archiveCmd := NewArchiveCommand(rootOpts)
	archiveCmd.SetOut(archiveBuf)
	archiveCmd.SetErr(archiveBuf)
	archiveCmd.SetArgs([]string{"global_2", "--org", "42"})
	require.NoError(t, archiveCmd.Execute())

	getBuf := &bytes.Buffer{}
	getCmd := NewGetCommand(rootOpts)
	getCmd.SetOut(getBuf)
	getCmd.SetErr(getBuf)
	getCmd.SetArgs([]string{"global_2"})
	require.NoError(t, getCmd.Execute())
	assert.Contains(t, getBuf.String(), "Archived: true")

	// The org store never gained a record.
	listBuf := &bytes.Buffer{}
	listCmd := NewListCommand(rootOpts)
	listCmd.SetOut(listBuf)
	listCmd.SetErr(listBuf)
	listCmd.SetArgs([]string{"--org", "42"})
	require.NoError(t, listCmd.Execute())
	assert.Contains(t, listBuf.String(), "No assistants in org_42 store")
}
