package trash

import (
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"slices"
	"time"

	"github.com/babarot/trashcan/internal/utils/fs"
	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

// Filterable defines the interface that trashed files must implement to be filtered
type Filterable interface {
	// GetName returns the original name of the file
	GetName() string
	// GetPath returns the current path in trash
	GetPath() string
	// GetDeletedAt returns when the file was trashed
	GetDeletedAt() time.Time
}

// FilterOptions selects the items an empty operation acts on.
// The zero value selects everything.
type FilterOptions struct {
	// OlderThan keeps items deleted at least this long ago.
	// Items with an unknown deletion time never match.
	OlderThan time.Duration

	// Names, Patterns (regexp) and Globs select by base name when any is set
	Names    []string
	Patterns []string
	Globs    []string

	Size    SizeRange
	Exclude Exclusion
}

// SizeRange bounds the payload size with human sizes such as "10MB"
type SizeRange struct {
	Min string
	Max string
}

// Exclusion lists base names that are never selected
type Exclusion struct {
	Names    []string
	Patterns []string
	Globs    []string
}

type sizeFunc func(string) (int64, error)

type nameMatcher struct {
	names    []string
	patterns []*regexp.Regexp
	globs    []glob.Glob
}

func newNameMatcher(names, patterns, globs []string) (nameMatcher, error) {
	m := nameMatcher{names: names}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return m, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	for _, g := range globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			return m, fmt.Errorf("invalid glob %q: %w", g, err)
		}
		m.globs = append(m.globs, compiled)
	}
	return m, nil
}

func (m nameMatcher) empty() bool {
	return len(m.names) == 0 && len(m.patterns) == 0 && len(m.globs) == 0
}

func (m nameMatcher) match(name string) bool {
	if slices.Contains(m.names, name) {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Filter returns the items selected by opts, keeping their order
func Filter[T Filterable](items []T, now time.Time, opts FilterOptions) ([]T, error) {
	return filter(items, now, opts, fs.DirSize)
}

func filter[T Filterable](items []T, now time.Time, opts FilterOptions, sizeOf sizeFunc) ([]T, error) {
	include, err := newNameMatcher(opts.Names, opts.Patterns, opts.Globs)
	if err != nil {
		return nil, err
	}
	exclude, err := newNameMatcher(opts.Exclude.Names, opts.Exclude.Patterns, opts.Exclude.Globs)
	if err != nil {
		return nil, err
	}

	var filtered []T
	for _, item := range items {
		name := item.GetName()
		if !include.empty() && !include.match(name) {
			continue
		}
		if exclude.match(name) {
			continue
		}
		if !olderThan(item, now, opts.OlderThan) {
			continue
		}
		filtered = append(filtered, item)
	}

	return rejectBySize(filtered, opts.Size, sizeOf)
}

func olderThan[T Filterable](item T, now time.Time, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	deletedAt := item.GetDeletedAt()
	if deletedAt.IsZero() {
		return false
	}
	return now.Sub(deletedAt) >= d
}

// rejectBySize drops items whose payload size is outside the range.
// Items that can't be sized are dropped as well.
func rejectBySize[T Filterable](items []T, size SizeRange, sizeOf sizeFunc) ([]T, error) {
	if size.Min == "" && size.Max == "" {
		return items, nil
	}

	var min, max int64 = -1, -1
	var err error
	if size.Min != "" {
		if min, err = units.FromHumanSize(size.Min); err != nil {
			return nil, fmt.Errorf("invalid min size %q: %w", size.Min, err)
		}
	}
	if size.Max != "" {
		if max, err = units.FromHumanSize(size.Max); err != nil {
			return nil, fmt.Errorf("invalid max size %q: %w", size.Max, err)
		}
	}

	sizes := make([]int64, len(items))
	sized := make([]bool, len(items))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, item := range items {
		g.Go(func() error {
			s, err := sizeOf(item.GetPath())
			if err != nil {
				slog.Debug("failed to get size", "path", item.GetPath(), "error", err)
				return nil
			}
			sizes[i], sized[i] = s, true
			return nil
		})
	}
	_ = g.Wait()

	var filtered []T
	for i, item := range items {
		if !sized[i] {
			continue
		}
		if min >= 0 && sizes[i] < min {
			continue
		}
		if max >= 0 && sizes[i] > max {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, nil
}
