package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/babarot/trashcan/internal/config"
	"github.com/babarot/trashcan/internal/env"
	"github.com/babarot/trashcan/internal/trash"
	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	root   string
	cwd    string
	home   core.Directory
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cli    *CLI
}

// newTestCLI runs against a temporary home with input as the user's answers
func newTestCLI(t *testing.T, opt Option, input string) testCLI {
	t.Helper()
	color.NoColor = true

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	cwd := filepath.Join(root, "foo")
	volume := filepath.Join(root, "volume")
	for _, dir := range []string{cwd, volume} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	e := env.Environment{
		Home:     filepath.Join(root, "home"),
		DataHome: filepath.Join(root, "home", ".local", "share"),
		Cwd:      cwd,
		UID:      os.Getuid(),
	}.WithDefaults()
	cfg := config.Default()

	manager, err := trash.NewManager(e, cfg,
		trash.WithMountTable(func() ([]string, error) { return []string{volume}, nil }),
	)
	require.NoError(t, err)

	home := core.NewDirectory(e.HomeTrashDir(), core.KindHome, "/")
	require.NoError(t, xdg.EnsureDirectory(home))

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return testCLI{
		root:   root,
		cwd:    cwd,
		home:   home,
		stdout: stdout,
		stderr: stderr,
		cli: &CLI{
			option:   opt,
			config:   cfg,
			env:      e,
			manager:  manager,
			prompter: NewLinePrompter(strings.NewReader(input), stdout),
			stdout:   stdout,
			stderr:   stderr,
		},
	}
}

// addTrashed puts a record and payload for originalPath into the home trash
func (tc testCLI) addTrashed(t *testing.T, stem, originalPath string, deletedAt time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(tc.home.InfoPathFor(stem), xdg.Encode(originalPath, deletedAt), 0600))
	require.NoError(t, os.WriteFile(tc.home.TrashPathFor(stem), []byte("trashed "+stem), 0600))
}

func (tc testCLI) records(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(tc.home.InfoDir)
	require.NoError(t, err)
	return len(entries)
}

var deletedAt = time.Date(2000, 1, 1, 0, 0, 1, 0, time.Local)

func TestRestoreNoFiles(t *testing.T) {
	tc := newTestCLI(t, Option{Restore: true}, "")

	require.NoError(t, tc.cli.Run(nil))
	require.Equal(t, "No files trashed from current dir ('"+tc.cwd+"')\n", tc.stdout.String())
	require.Empty(t, tc.stderr.String())
}

func TestRestoreIgnoresOtherDirectories(t *testing.T) {
	tc := newTestCLI(t, Option{Restore: true}, "")
	tc.addTrashed(t, "bar", filepath.Join(tc.root, "elsewhere", "bar"), deletedAt)
	tc.addTrashed(t, "baz", filepath.Join(tc.cwd, "sub", "baz"), deletedAt)

	require.NoError(t, tc.cli.Run(nil))
	require.Equal(t, "No files trashed from current dir ('"+tc.cwd+"')\n", tc.stdout.String())
}

func TestRestoreFile(t *testing.T) {
	tc := newTestCLI(t, Option{Restore: true}, "0\n")
	dst := filepath.Join(tc.cwd, "bar")
	tc.addTrashed(t, "bar", dst, deletedAt)

	require.NoError(t, tc.cli.Run(nil))
	require.Equal(t,
		"   0 2000-01-01 00:00:01 "+dst+"\n"+
			"What file to restore [0..0]: ",
		tc.stdout.String())
	require.Empty(t, tc.stderr.String())

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "trashed bar", string(data))
	require.Zero(t, tc.records(t))
}

func TestRestoreFromGivenDirectory(t *testing.T) {
	tc := newTestCLI(t, Option{Restore: true}, "1\n")
	other := filepath.Join(tc.root, "other")
	tc.addTrashed(t, "a", filepath.Join(other, "a"), deletedAt)
	tc.addTrashed(t, "b", filepath.Join(other, "b"), deletedAt.Add(time.Hour))

	require.NoError(t, tc.cli.Run([]string{"../other"}))
	require.Contains(t, tc.stdout.String(), "   1 2000-01-01 01:00:01 "+filepath.Join(other, "b")+"\n")
	require.Contains(t, tc.stdout.String(), "What file to restore [0..1]: ")
	require.FileExists(t, filepath.Join(other, "b"))
	require.NoFileExists(t, filepath.Join(other, "a"))
	require.Equal(t, 1, tc.records(t))
}

func TestRestoreExitsOnEmptyAnswer(t *testing.T) {
	for _, input := range []string{"\n", ""} {
		tc := newTestCLI(t, Option{Restore: true}, input)
		tc.addTrashed(t, "bar", filepath.Join(tc.cwd, "bar"), deletedAt)

		require.NoError(t, tc.cli.Run(nil))
		require.True(t, strings.HasSuffix(tc.stdout.String(), "What file to restore [0..0]: Exiting\n"), tc.stdout.String())
		require.Equal(t, 1, tc.records(t))
	}
}

func TestRestoreInvalidEntry(t *testing.T) {
	for _, input := range []string{"1\n", "-1\n", "abc\n", "0.5\n"} {
		t.Run(strings.TrimSpace(input), func(t *testing.T) {
			tc := newTestCLI(t, Option{Restore: true}, input)
			tc.addTrashed(t, "bar", filepath.Join(tc.cwd, "bar"), deletedAt)

			err := tc.cli.Run(nil)
			require.ErrorIs(t, err, ErrReported)
			require.Equal(t, "Invalid entry\n", tc.stderr.String())
			require.Equal(t, 1, tc.records(t))
			require.NoFileExists(t, filepath.Join(tc.cwd, "bar"))
		})
	}
}

func TestRestoreRefusesToOverwrite(t *testing.T) {
	tc := newTestCLI(t, Option{Restore: true}, "0\n")
	dst := filepath.Join(tc.cwd, "bar")
	require.NoError(t, os.WriteFile(dst, []byte("existing"), 0644))
	tc.addTrashed(t, "bar", dst, deletedAt)

	err := tc.cli.Run(nil)
	require.ErrorIs(t, err, ErrReported)
	require.Equal(t, "Refusing to overwrite existing file \""+dst+"\".\n", tc.stderr.String())

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "existing", string(data))
	require.Equal(t, 1, tc.records(t))
}

func TestRestoreRefusesToOverwriteOddName(t *testing.T) {
	tc := newTestCLI(t, Option{Restore: true}, "0\n")
	dst := filepath.Join(tc.cwd, `we"ird\name`)
	require.NoError(t, os.WriteFile(dst, []byte("existing"), 0644))
	tc.addTrashed(t, "weird", dst, deletedAt)

	require.ErrorIs(t, tc.cli.Run(nil), ErrReported)
	require.Equal(t, `Refusing to overwrite existing file "`+dst+`".`+"\n", tc.stderr.String())
}

func TestList(t *testing.T) {
	tc := newTestCLI(t, Option{List: true}, "")
	tc.addTrashed(t, "a", "/x/a", deletedAt)
	require.NoError(t, os.WriteFile(tc.home.InfoPathFor("undated"), []byte("[Trash Info]\nPath=/x/undated\n"), 0600))
	require.NoError(t, os.WriteFile(tc.home.TrashPathFor("undated"), nil, 0600))
	require.NoError(t, os.WriteFile(tc.home.InfoPathFor("orphan"), xdg.Encode("/x/orphan", deletedAt), 0600))
	require.NoError(t, os.WriteFile(tc.home.InfoPathFor("broken"), []byte("nonsense"), 0600))

	require.NoError(t, tc.cli.Run(nil))
	require.Equal(t,
		"2000-01-01 00:00:01 /x/a\n"+
			"????-??-?? ??:??:?? /x/undated\n",
		tc.stdout.String())
	require.Contains(t, tc.stderr.String(), "orphaned record: "+tc.home.InfoPathFor("orphan"))
	require.Contains(t, tc.stderr.String(), "malformed record: "+tc.home.InfoPathFor("broken"))
}

func TestListLong(t *testing.T) {
	tc := newTestCLI(t, Option{List: true, Long: true}, "")
	tc.addTrashed(t, "a", "/x/a", deletedAt)

	require.NoError(t, tc.cli.Run(nil))
	line := tc.stdout.String()
	require.Contains(t, line, "2000-01-01 00:00:01")
	require.Contains(t, line, "9 B")
	require.Contains(t, line, "text/plain")
	require.True(t, strings.HasSuffix(line, " /x/a\n"))
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		input   string
		remains int
	}{
		{name: "forced", opt: Option{Empty: true, Force: true}, remains: 0},
		{name: "confirmed", opt: Option{Empty: true}, input: "y\n", remains: 0},
		{name: "declined", opt: Option{Empty: true}, input: "n\n", remains: 2},
		{name: "no answer", opt: Option{Empty: true}, input: "", remains: 2},
		{name: "by pattern", opt: Option{Empty: true, Force: true, Patterns: []string{"*.log"}}, remains: 1},
		{name: "older than", opt: Option{Empty: true, Force: true, OlderThan: "1d"}, remains: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCLI(t, tt.opt, tt.input)
			tc.addTrashed(t, "old.log", "/x/old.log", deletedAt)
			tc.addTrashed(t, "new.txt", "/x/new.txt", time.Now())

			require.NoError(t, tc.cli.Run(nil))
			require.Equal(t, tt.remains, tc.records(t))
		})
	}
}

func TestEmptyInvalidOlderThan(t *testing.T) {
	tc := newTestCLI(t, Option{Empty: true, Force: true, OlderThan: "soon"}, "")
	tc.addTrashed(t, "a", "/x/a", deletedAt)

	require.Error(t, tc.cli.Run(nil))
	require.Equal(t, 1, tc.records(t))
}

func TestPruneOrphans(t *testing.T) {
	tc := newTestCLI(t, Option{PruneOrphans: true, Force: true}, "")
	tc.addTrashed(t, "kept", "/x/kept", deletedAt)
	require.NoError(t, os.WriteFile(tc.home.InfoPathFor("orphan"), xdg.Encode("/x/orphan", deletedAt), 0600))

	require.NoError(t, tc.cli.Run(nil))
	require.Contains(t, tc.stdout.String(), tc.home.InfoPathFor("orphan"))
	require.Contains(t, tc.stdout.String(), "Removed 1 orphaned records.")
	require.Equal(t, 1, tc.records(t))
	require.FileExists(t, tc.home.InfoPathFor("kept"))
}

type promptFunc func(msg string) (string, error)

func (f promptFunc) Prompt(msg string) (string, error) { return f(msg) }

func TestPruneOrphansKeepsPayloadThatAppearedWhileAsking(t *testing.T) {
	tc := newTestCLI(t, Option{PruneOrphans: true}, "")
	require.NoError(t, os.WriteFile(tc.home.InfoPathFor("doc"), xdg.Encode("/x/doc", deletedAt), 0600))

	tc.cli.prompter = promptFunc(func(string) (string, error) {
		require.NoError(t, os.WriteFile(tc.home.TrashPathFor("doc"), []byte("arrived"), 0600))
		return "y", nil
	})

	err := tc.cli.Run(nil)
	require.ErrorIs(t, err, ErrReported)
	require.Contains(t, tc.stderr.String(), "no longer orphaned")
	require.Contains(t, tc.stdout.String(), "Removed 0 orphaned records.")
	require.FileExists(t, tc.home.InfoPathFor("doc"))
	require.FileExists(t, tc.home.TrashPathFor("doc"))
}

func TestPut(t *testing.T) {
	tc := newTestCLI(t, Option{Rm: RmOption{Verbose: true}}, "")
	src := filepath.Join(tc.cwd, "doc.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	require.NoError(t, tc.cli.Run([]string{"doc.txt"}))
	require.Equal(t, "trashed '"+src+"'\n", tc.stdout.String())
	require.NoFileExists(t, src)
	require.Equal(t, 1, tc.records(t))
}

func TestPutMissing(t *testing.T) {
	tc := newTestCLI(t, Option{}, "")
	require.Error(t, tc.cli.Run([]string{"missing"}))
	require.Error(t, tc.cli.Run(nil), "too few arguments")

	tc.cli.option.Force = true
	require.NoError(t, tc.cli.Run([]string{"missing"}))
}
