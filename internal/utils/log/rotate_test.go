package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRotateWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	w, err := NewRotateWriter(path, "10B", 2)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	for _, line := range []string{"first\n", "second\n", "third\n", "fourth\n"} {
		_, err = w.Write([]byte(line))
		require.NoError(t, err)
	}

	require.Equal(t, "fourth\n", readFile(t, path))
	require.Equal(t, "third\n", readFile(t, path+".1"))
	require.Equal(t, "second\n", readFile(t, path+".2"))
	require.NoFileExists(t, path+".3")
}

func TestRotateWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	w, err := NewRotateWriter(path, "1KB", 1)
	require.NoError(t, err)
	_, err = w.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Equal(t, "old\nnew\n", readFile(t, path))
}

func TestRotateWriterWithoutBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	w, err := NewRotateWriter(path, "4B", 0)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	for _, line := range []string{"abc\n", "def\n"} {
		_, err = w.Write([]byte(line))
		require.NoError(t, err)
	}
	require.Equal(t, "def\n", readFile(t, path))
	require.NoFileExists(t, path+".1")
}

func TestRotateWriterInvalidSize(t *testing.T) {
	for _, size := range []string{"huge", "0B"} {
		_, err := NewRotateWriter(filepath.Join(t.TempDir(), "debug.log"), size, 1)
		require.Error(t, err, size)
	}
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, WarnLevel, ParseLevel("warn"))
	require.Equal(t, InfoLevel, ParseLevel("nonsense"))
}
