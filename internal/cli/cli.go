package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/babarot/trashcan/internal/config"
	"github.com/babarot/trashcan/internal/env"
	"github.com/babarot/trashcan/internal/trash"
	"github.com/babarot/trashcan/internal/utils/debug"
	"github.com/babarot/trashcan/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

// ErrReported means the failure was already printed for the user
var ErrReported = errors.New("reported")

type Option struct {
	List         bool     `short:"l" long:"list" description:"List trashed files"`
	Long         bool     `long:"long" description:"Show size and type of each file with --list"`
	Restore      bool     `short:"r" long:"restore" description:"Restore a file deleted from the current (or given) directory"`
	Empty        bool     `long:"empty" description:"Permanently delete trashed files"`
	OlderThan    string   `long:"older-than" description:"With --empty, only files deleted at least this long ago (e.g. 30d, 2w)"`
	Patterns     []string `long:"pattern" description:"With --empty, only files whose name matches the glob (repeatable)"`
	PruneOrphans bool     `long:"prune-orphans" description:"Remove records whose trashed file has disappeared"`
	Force        bool     `short:"f" long:"force" description:"Never prompt; ignore nonexistent files when trashing"`
	Config       string   `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"R" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

type CLI struct {
	version  Version
	option   Option
	config   config.Config
	env      env.Environment
	manager  *trash.Manager
	prompter Prompter
	stdout   io.Writer
	stderr   io.Writer
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[--list | --restore [dir] | --empty | --prune-orphans | files...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return ErrReported
	}

	if opt.Meta.Version {
		fmt.Fprint(os.Stdout, v.Print())
		return nil
	}

	// Until the config is read only warnings reach the terminal
	log.New(log.UseLevel(log.WarnLevel), log.UsePrefix(v.AppName), log.AsDefault())

	e, err := env.FromOS()
	if err != nil {
		return err
	}
	if opt.Config != "" {
		e.ConfigPath = opt.Config
	}

	cfg, err := config.Parse(e.ConfigPath, opt.Config == "")
	if err != nil {
		return err
	}

	closeLog, err := setupLogger(e, cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	if opt.Meta.Debug != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return debug.Logs(ctx, os.Stdout, e.LogPath, cfg.Logging.Enabled, opt.Meta.Debug == "live")
	}

	manager, err := trash.NewManager(e, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize trash manager: %w", err)
	}

	c := CLI{
		version:  v,
		option:   opt,
		config:   cfg,
		env:      e,
		manager:  manager,
		prompter: NewLinePrompter(os.Stdin, os.Stdout),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	if err := c.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

// setupLogger sends logs to the rotating debug log when logging is enabled
// and discards them otherwise
func setupLogger(e env.Environment, cfg config.Logging) (func(), error) {
	if !cfg.Enabled {
		slog.SetDefault(log.Discard())
		return func() {}, nil
	}

	w, err := log.NewRotateWriter(e.LogPath, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.New(
		log.UseOutput(w),
		log.UseLevel(log.ParseLevel(cfg.Level)),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.DateTime),
		log.UseAttrs(slog.String("run_id", runID())),
		log.AsDefault(),
	)
	return func() { w.Close() }, nil
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.List:
		return c.List()

	case c.option.Restore:
		var dir string
		if len(args) > 0 {
			dir = args[0]
		}
		return c.Restore(dir)

	case c.option.Empty:
		return c.Empty()

	case c.option.PruneOrphans:
		return c.PruneOrphans()

	default:
		return c.Put(args)
	}
}
