package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/trashcan/internal/trash/core"
)

func (c *CLI) Put(args []string) error {
	slog.Debug("cli.put started")
	defer slog.Debug("cli.put finished")

	if len(args) == 0 {
		return errors.New("too few arguments")
	}

	var errs []error
	for _, arg := range args {
		file, err := c.manager.Put(arg)
		if err != nil {
			if c.option.Force && errors.Is(err, core.ErrNotFound) {
				continue
			}
			errs = append(errs, fmt.Errorf("cannot trash %q: %w", arg, err))
			continue
		}
		if c.option.Rm.Verbose {
			fmt.Fprintf(c.stdout, "trashed '%s'\n", file.OriginalPath)
		}
	}

	return formatErrors(errs)
}

func formatErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	msg := fmt.Sprintf("%d errors occurred:\n", len(errs))
	for _, err := range errs {
		msg += fmt.Sprintf("  * %v\n", err)
	}
	return errors.New(msg)
}
