package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/babarot/trashcan/internal/trash"
	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
	"github.com/babarot/trashcan/internal/utils/fs"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gabriel-vasile/mimetype"
)

func (c *CLI) List() error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	listing, err := c.manager.List()
	if err != nil {
		return err
	}

	for _, file := range listing.Files {
		if c.option.Long {
			fmt.Fprintf(c.stdout, "%s %8s %-24s %s\n",
				xdg.FormatDeletionDate(file.DeletedAt),
				payloadSize(file),
				payloadType(file),
				file.OriginalPath,
			)
			continue
		}
		fmt.Fprintf(c.stdout, "%s %s\n", xdg.FormatDeletionDate(file.DeletedAt), file.OriginalPath)
	}

	c.reportDiagnostics(listing)
	return nil
}

// reportDiagnostics prints orphaned and malformed records to stderr
func (c *CLI) reportDiagnostics(listing trash.Listing) {
	warn := color.New(color.FgYellow).SprintFunc()
	for _, entry := range listing.Orphans {
		fmt.Fprintf(c.stderr, "%s %s (trashed file is missing, see --prune-orphans)\n",
			warn("orphaned record:"), entry.InfoPath)
	}
	for _, entry := range listing.Malformed {
		fmt.Fprintf(c.stderr, "%s %s: %v\n", warn("malformed record:"), entry.InfoPath, entry.Err)
	}
}

func payloadSize(file *core.File) string {
	size, err := fs.DirSize(file.TrashPath)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(size))
}

func payloadType(file *core.File) string {
	info, err := os.Lstat(file.TrashPath)
	if err != nil {
		return "?"
	}
	switch {
	case info.IsDir():
		return "inode/directory"
	case !info.Mode().IsRegular():
		return "inode/symlink"
	}
	mtype, err := mimetype.DetectFile(file.TrashPath)
	if err != nil {
		return "?"
	}
	return mtype.String()
}
