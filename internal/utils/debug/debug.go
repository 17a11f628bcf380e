// Package debug shows the debug log written by the rotating log file.
package debug

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

var (
	errLoggingDisabled = errors.New("logging is not enabled in config: set logging.enabled to true")
	errNoLogFile       = errors.New("no log file exists yet: try running some commands first")
)

// Logs writes the debug log at path to w. With live it follows lines
// appended from now on until ctx is done; otherwise it prints the rotated
// copies, oldest first, then the current file.
func Logs(ctx context.Context, w io.Writer, path string, enabled, live bool) error {
	if live {
		if !enabled {
			return errLoggingDisabled
		}
		return follow(ctx, w, path)
	}
	return dump(w, path, enabled)
}

func dump(w io.Writer, path string, enabled bool) error {
	files := append(rotated(path), path)
	var printed int
	for _, name := range files {
		f, err := os.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			return err
		}
		printed++
	}

	if printed == 0 {
		if !enabled {
			return errLoggingDisabled
		}
		return errNoLogFile
	}
	return nil
}

// rotated lists path.N ... path.1, the oldest copy first
func rotated(path string) []string {
	matches, _ := filepath.Glob(path + ".*")
	type backup struct {
		name string
		n    int
	}
	var backups []backup
	for _, m := range matches {
		n, err := strconv.Atoi(strings.TrimPrefix(m, path+"."))
		if err != nil || n < 1 {
			continue
		}
		backups = append(backups, backup{name: m, n: n})
	}
	slices.SortFunc(backups, func(a, b backup) int { return b.n - a.n })

	names := make([]string, len(backups))
	for i, b := range backups {
		names[i] = b.name
	}
	return names
}

func follow(ctx context.Context, w io.Writer, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return errNoLogFile
	}

	// Piped output gets what is there now and stops
	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen:   interactive,
		Follow:   interactive,
		Poll:     true,
		Logger:   tail.DiscardingLogger,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		return err
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintln(w, line.Text)
		}
	}
}
