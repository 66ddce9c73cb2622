package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	SetVersion(v)
	t.Cleanup(func() { version = original })
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_PrintsBuildInfo(t *testing.T) {
	withVersion(t, "1.4.0")

	out, err := runCLI(t, "", "version", "--short=false")

	require.NoError(t, err)
	assert.Contains(t, out, "confrep 1.4.0")
	assert.Contains(t, out, runtime.Version())
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_Short(t *testing.T) {
	withVersion(t, "1.4.0")

	out, err := runCLI(t, "", "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "1.4.0\n", out)
}

func TestVersionCmd_DevByDefault(t *testing.T) {
	withVersion(t, "dev")

	out, err := runCLI(t, "", "version", "--short=false")

	require.NoError(t, err)
	assert.Contains(t, out, "confrep dev")
}
