package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/samber/lo"
)

// PruneOrphans removes records whose trashed file has disappeared
func (c *CLI) PruneOrphans() error {
	slog.Debug("pruning orphaned records started")
	defer slog.Debug("pruning orphaned records finished")

	listing, err := c.manager.List()
	if err != nil {
		return err
	}
	if len(listing.Orphans) == 0 {
		fmt.Fprintln(c.stdout, "No orphaned records found.")
		return nil
	}

	printOrphanedFilesTable(c.stdout, listing.Orphans)

	if !c.option.Force {
		ok, err := confirm(c.prompter, fmt.Sprintf("Remove %d orphaned records?", len(listing.Orphans)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.stdout, "Exiting")
			return nil
		}
	}

	orphans := lo.Map(listing.Orphans, func(e core.Entry, _ int) *core.File {
		return e.File
	})
	return c.reportResult(c.manager.RemoveOrphans(orphans), "orphaned records")
}

// printOrphanedFilesTable prints a formatted table of orphaned records
func printOrphanedFilesTable(w io.Writer, orphans []core.Entry) {
	green := color.New(color.FgHiGreen).SprintfFunc()
	white := color.New(color.FgWhite).SprintfFunc()

	fmt.Fprintf(w, "%s %s %s\n",
		green("%-20s", "Deleted At"),
		green("%-10s", "Size"),
		green("%-30s", "Path"),
	)

	for _, entry := range orphans {
		info, err := os.Stat(entry.InfoPath)
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "%s %s %s\n",
			white("%-20s", xdg.FormatDeletionDate(entry.File.DeletedAt)),
			white("%-10s", humanize.Bytes(uint64(info.Size()))),
			white("%-30s", entry.InfoPath),
		)
	}
	fmt.Fprintln(w)
}
