package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mirrordesk/persona/internal/testutil"
)

// seededNames lists the builtin personas every fresh global store ends up
// with, in catalog order.
var seededNames = []string{"General Q&A", "General Q&A Assistant", "Elon Musk"}

// testRootOptions builds root options wired for deterministic command runs:
// an isolated data dir, a fixed trace id sequence, and a stepping clock.
// The generator carries enough ids for several invocations per test.
func testRootOptions(t *testing.T, format string) *RootOptions {
	t.Helper()
	return &RootOptions{
		Format:  format,
		DataDir: t.TempDir(),
		TraceIDs: NewFixedGenerator(
			"trace-1", "trace-2", "trace-3", "trace-4",
			"trace-5", "trace-6", "trace-7", "trace-8",
		),
		Clock: testutil.NewClock(time.Second),
	}
}

// brokenDataDir returns a data dir path nested under a regular file, so
// every store open fails with STORAGE_UNAVAILABLE.
func brokenDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))
	return filepath.Join(blocker, "data")
}

// writeFile drops content into dir under name and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// cliResponse mirrors CLIResponse with a raw data payload so tests can
// decode it into the command's own result type.
type cliResponse struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   *CLIError       `json:"error"`
	TraceID string          `json:"trace_id"`
}

// decodeResponse parses the JSON body a command wrote to buf.
func decodeResponse(t *testing.T, buf *bytes.Buffer) cliResponse {
	t.Helper()
	var resp cliResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp), "output should be valid JSON: %s", buf.String())
	return resp
}

// decodeData unmarshals a response's data payload into out.
func decodeData(t *testing.T, resp cliResponse, out any) {
	t.Helper()
	require.NotNil(t, resp.Data, "response should carry a data payload")
	require.NoError(t, json.Unmarshal(resp.Data, out))
}
