package cli

import (
	"fmt"
	"log/slog"

	"github.com/babarot/trashcan/internal/trash"
	"github.com/babarot/trashcan/internal/utils/duration"
	"github.com/fatih/color"
)

// Empty permanently deletes the trashed files selected by the config and
// by --older-than / --pattern
func (c *CLI) Empty() error {
	slog.Debug("cli.empty started")
	defer slog.Debug("cli.empty finished")

	opts, err := c.manager.DefaultFilterOptions()
	if err != nil {
		return err
	}
	if c.option.OlderThan != "" {
		d, err := duration.Parse(c.option.OlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than: %w", err)
		}
		opts.OlderThan = d
	}
	opts.Globs = c.option.Patterns
	slog.Debug("empty filter", "older_than", opts.OlderThan, "globs", opts.Globs)

	files, err := c.manager.Select(opts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(c.stdout, "Nothing to empty.")
		return nil
	}

	if !c.option.Force {
		ok, err := confirm(c.prompter, fmt.Sprintf("Permanently delete %d trashed files?", len(files)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.stdout, "Exiting")
			return nil
		}
	}

	return c.reportResult(c.manager.RemoveFiles(files), "trashed files")
}

func (c *CLI) reportResult(result trash.EmptyResult, what string) error {
	if len(result.Failed) > 0 {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(c.stderr, "Failed to remove %d %s:\n", len(result.Failed), what)
		for _, failure := range result.Failed {
			fmt.Fprintf(c.stderr, "  %s %s: %v\n", red("*"), failure.File.OriginalPath, failure.Err)
		}
		fmt.Fprintf(c.stdout, "Removed %d %s.\n", len(result.Removed), what)
		return ErrReported
	}

	fmt.Fprintf(c.stdout, "Removed %d %s.\n", len(result.Removed), what)
	return nil
}
