package trash

import (
	"fmt"
	"log/slog"

	"github.com/babarot/trashcan/internal/config"
	"github.com/babarot/trashcan/internal/env"
	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
)

// Manager wires the trash components for a single invocation.
// Trash directories are located again on every call.
type Manager struct {
	env     env.Environment
	config  config.Config
	volumes *xdg.VolumeResolver
	locator *xdg.Locator
	purger  *Purger
	clock   Clock
}

type options struct {
	mountTable xdg.MountTable
	clock      Clock
}

type Option func(*options)

// WithMountTable replaces the system mount table
func WithMountTable(table xdg.MountTable) Option {
	return func(o *options) {
		o.mountTable = table
	}
}

// WithClock replaces the clock used for deletion dates and age filters
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func NewManager(e env.Environment, cfg config.Config, opts ...Option) (*Manager, error) {
	o := options{clock: RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	homeTrashDir, err := cfg.Core.Trash.ExpandedHomeTrashDir(e.Home)
	if err != nil {
		return nil, fmt.Errorf("invalid home trash directory: %w", err)
	}

	var locatorOpts []xdg.LocatorOption
	if homeTrashDir != "" {
		locatorOpts = append(locatorOpts, xdg.WithHomeTrashDir(homeTrashDir))
	}
	if cfg.Core.Trash.HomeOnly {
		locatorOpts = append(locatorOpts, xdg.WithoutVolumes())
	}

	volumes := xdg.NewVolumeResolver(o.mountTable)
	return &Manager{
		env:     e,
		config:  cfg,
		volumes: volumes,
		locator: xdg.NewLocator(e, volumes, locatorOpts...),
		purger:  NewPurger(o.clock),
		clock:   o.clock,
	}, nil
}

// Directories returns the trash directories that currently exist
func (m *Manager) Directories() ([]core.Directory, error) {
	dirs, err := m.locator.All()
	if err != nil {
		return nil, fmt.Errorf("failed to locate trash directories: %w", err)
	}
	slog.Debug("located trash directories", "count", len(dirs))
	return dirs, nil
}

// Resolver returns a resolver over the current trash directories
func (m *Manager) Resolver() (*Resolver, error) {
	dirs, err := m.Directories()
	if err != nil {
		return nil, err
	}
	return NewResolver(dirs), nil
}

// List returns every record of every trash directory
func (m *Manager) List() (Listing, error) {
	r, err := m.Resolver()
	if err != nil {
		return Listing{}, err
	}
	return r.All(), nil
}

// Candidates returns the files deleted from queryDir, or from the working
// directory when queryDir is empty
func (m *Manager) Candidates(queryDir string) (Listing, error) {
	if queryDir == "" {
		queryDir = m.env.Cwd
	}
	r, err := m.Resolver()
	if err != nil {
		return Listing{}, err
	}
	return r.Candidates(queryDir), nil
}

// Restore restores file to dst, or to its original path when dst is empty
func (m *Manager) Restore(file *core.File, dst string) error {
	return NewResolver(nil).Restore(file, dst)
}

// Remove permanently deletes file
func (m *Manager) Remove(file *core.File) error {
	return m.purger.Remove(file)
}

// Empty permanently deletes the trashed files selected by opts
func (m *Manager) Empty(opts FilterOptions) (EmptyResult, error) {
	dirs, err := m.Directories()
	if err != nil {
		return EmptyResult{}, err
	}
	return m.purger.Empty(dirs, opts)
}

// Select returns the trashed files an empty with opts would remove
func (m *Manager) Select(opts FilterOptions) ([]*core.File, error) {
	dirs, err := m.Directories()
	if err != nil {
		return nil, err
	}
	return m.purger.Select(dirs, opts)
}

// RemoveFiles permanently deletes files, collecting failures
func (m *Manager) RemoveFiles(files []*core.File) EmptyResult {
	return m.purger.RemoveAll(files)
}

// RemoveOrphans drops the records of orphans whose payload is still missing
func (m *Manager) RemoveOrphans(orphans []*core.File) EmptyResult {
	return m.purger.RemoveOrphans(orphans)
}

// PruneOrphans removes records whose payload has disappeared
func (m *Manager) PruneOrphans() (EmptyResult, error) {
	dirs, err := m.Directories()
	if err != nil {
		return EmptyResult{}, err
	}
	return m.purger.PruneOrphans(dirs), nil
}

// DefaultFilterOptions returns the empty filter described by core.empty
func (m *Manager) DefaultFilterOptions() (FilterOptions, error) {
	empty := m.config.Core.Empty
	olderThan, err := empty.OlderThanDuration()
	if err != nil {
		return FilterOptions{}, fmt.Errorf("invalid core.empty.older_than: %w", err)
	}
	return FilterOptions{
		OlderThan: olderThan,
		Size: SizeRange{
			Min: empty.Exclude.Size.Min,
			Max: empty.Exclude.Size.Max,
		},
		Exclude: Exclusion{
			Names:    empty.Exclude.Files,
			Patterns: empty.Exclude.Patterns,
			Globs:    empty.Exclude.Globs,
		},
	}, nil
}
