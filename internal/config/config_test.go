package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trashcan", "config.yaml")

	cfg, err := Parse(path, true)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.FileExists(t, path)

	// the written file parses back to the same values
	again, err := Parse(path, false)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestParseMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Parse(path, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing.yaml")
}

func TestParseKeepsDefaultsForUnsetKeys(t *testing.T) {
	path := writeConfig(t, "core:\n  trash:\n    home_only: true\n")

	cfg, err := Parse(path, false)
	require.NoError(t, err)
	require.True(t, cfg.Core.Trash.HomeOnly)
	require.True(t, cfg.Core.HomeFallback)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, []string{".DS_Store"}, cfg.Core.Empty.Exclude.Files)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "valid size",
			content: "core:\n  empty:\n    exclude:\n      size:\n        min: 1kb\n        max: 10GB\n",
		},
		{
			name:    "invalid size",
			content: "core:\n  empty:\n    exclude:\n      size:\n        min: big\n",
			wantErr: "min",
		},
		{
			name:    "valid duration",
			content: "core:\n  empty:\n    older_than: 30 days\n",
		},
		{
			name:    "invalid duration",
			content: "core:\n  empty:\n    older_than: someday\n",
			wantErr: "older_than",
		},
		{
			name:    "invalid level",
			content: "logging:\n  level: chatty\n",
			wantErr: "level",
		},
		{
			name:    "negative max files",
			content: "logging:\n  rotation:\n    max_files: -1\n",
			wantErr: "max_files",
		},
		{
			name:    "unknown key",
			content: "core:\n  trash:\n    strategy: xdg\n",
			wantErr: "strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content), false)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHomeTrashDirMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := Parse(writeConfig(t, "core:\n  trash:\n    home_trash_dir: "+file+"\n"), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "home_trash_dir")
}

func TestOlderThanDuration(t *testing.T) {
	d, err := Empty{}.OlderThanDuration()
	require.NoError(t, err)
	require.Zero(t, d)

	d, err = Empty{OlderThan: "2 days"}.OlderThanDuration()
	require.NoError(t, err)
	require.Equal(t, 48*time.Hour, d)
}

func TestExpandedHomeTrashDir(t *testing.T) {
	t.Setenv("TRASHCAN_TEST_ROOT", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: "/home/user"},
		{in: "~/trash", want: "/home/user/trash"},
		{in: "$TRASHCAN_TEST_ROOT/trash", want: "/data/trash"},
		{in: "/abs/trash/", want: "/abs/trash"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Trash{HomeTrashDir: tt.in}.ExpandedHomeTrashDir("/home/user")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConfigErrorShowsExample(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "home_fallback: true"))
}
