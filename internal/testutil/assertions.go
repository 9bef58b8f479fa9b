package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// AssertFileContent fails the test when the file at path does not hold
// exactly want.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected %s to be written", path)
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// AssertLogged checks text-handler log output for a record with the given
// message. Both the quoted and the bare form of the msg attribute match, so
// callers do not depend on slog's quoting rules.
func AssertLogged(t *testing.T, logs, msg string) {
	t.Helper()

	quoted := fmt.Sprintf("msg=%q", msg)
	bare := "msg=" + msg
	require.True(t,
		strings.Contains(logs, quoted) || strings.Contains(logs, bare),
		"expected a log record %q, got:\n%s", msg, logs,
	)
}
