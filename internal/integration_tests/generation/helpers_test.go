package integration_tests

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/genmake/internal/app"
	"github.com/vk/genmake/internal/cli"
	"github.com/vk/genmake/internal/hcl"
	"github.com/vk/genmake/internal/testutil"
)

// generate runs the whole command line through the parser and the app, the
// same way the binary does, and returns what was printed and logged.
func generate(t *testing.T, args ...string) (out, logs string, err error) {
	t.Helper()

	outW := &testutil.SafeBuffer{}
	logW := &testutil.SafeBuffer{}

	appConfig, shouldExit, err := cli.Parse(append([]string{"--log-level=debug"}, args...), outW)
	require.NoError(t, err)
	require.False(t, shouldExit)

	genmakeApp := app.NewApp(outW, logW, appConfig, hcl.NewLoader())
	runErr := genmakeApp.Run(context.Background())

	if os.Getenv("GENMAKE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logW.String())
	}
	return outW.String(), logW.String(), runErr
}
