package debug

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpIncludesRotatedCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	for name, content := range map[string]string{
		path:          "current\n",
		path + ".1":   "newer\n",
		path + ".2":   "older\n",
		path + ".old": "ignored\n",
	} {
		require.NoError(t, os.WriteFile(name, []byte(content), 0644))
	}

	var buf bytes.Buffer
	require.NoError(t, Logs(context.Background(), &buf, path, true, false))
	require.Equal(t, "older\nnewer\ncurrent\n", buf.String())
}

func TestDumpMissingLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	err := Logs(context.Background(), &bytes.Buffer{}, path, false, false)
	require.ErrorIs(t, err, errLoggingDisabled)

	err = Logs(context.Background(), &bytes.Buffer{}, path, true, false)
	require.ErrorIs(t, err, errNoLogFile)
}

func TestFollowRequiresLogging(t *testing.T) {
	err := Logs(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "debug.log"), false, true)
	require.ErrorIs(t, err, errLoggingDisabled)
}

func TestFollowMissingFile(t *testing.T) {
	err := Logs(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "debug.log"), true, true)
	require.ErrorIs(t, err, errNoLogFile)
}
