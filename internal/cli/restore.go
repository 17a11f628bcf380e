package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
)

// Restore lists the files deleted from dir (the working directory when
// empty), asks for one and restores it to its original path
func (c *CLI) Restore(dir string) error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	if dir == "" {
		dir = c.env.Cwd
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.env.Cwd, dir)
	}
	dir = filepath.Clean(dir)

	r, err := c.manager.Resolver()
	if err != nil {
		return err
	}

	listing := r.Candidates(dir)
	if len(listing.Orphans) > 0 {
		c.reportDiagnostics(listing)
	}
	if len(listing.Files) == 0 {
		fmt.Fprintf(c.stdout, "No files trashed from current dir ('%s')\n", dir)
		return nil
	}

	for i, file := range listing.Files {
		fmt.Fprintf(c.stdout, "%4d %s %s\n", i, xdg.FormatDeletionDate(file.DeletedAt), file.OriginalPath)
	}

	answer, err := c.prompter.Prompt(fmt.Sprintf("What file to restore [0..%d]: ", len(listing.Files)-1))
	if err != nil {
		return err
	}
	if strings.TrimSpace(answer) == "" {
		fmt.Fprintln(c.stdout, "Exiting")
		return nil
	}

	file, err := r.Select(listing.Files, answer)
	if err != nil {
		slog.Debug("invalid selection", "input", answer, "error", err)
		fmt.Fprintln(c.stderr, "Invalid entry")
		return ErrReported
	}

	if err := r.Restore(file, ""); err != nil {
		if core.IsFileExists(err) {
			fmt.Fprintf(c.stderr, "Refusing to overwrite existing file \"%s\".\n", file.OriginalPath)
			return ErrReported
		}
		return fmt.Errorf("restore %s: %w", file.OriginalPath, err)
	}

	if c.config.Core.Restore.Verbose {
		fmt.Fprintf(c.stdout, "restored '%s'\n", file.OriginalPath)
	}
	return nil
}
