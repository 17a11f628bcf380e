package xdg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/trashcan/internal/utils/fs"
	"github.com/moby/sys/mountinfo"
	"github.com/samber/lo"
)

// Skip file systems that can't have trash directories
var skipFSTypes = map[string]bool{
	"proc":        true,
	"sysfs":       true,
	"devtmpfs":    true,
	"devpts":      true,
	"cgroup":      true,
	"cgroup2":     true,
	"pstore":      true,
	"securityfs":  true,
	"debugfs":     true,
	"tracefs":     true,
	"configfs":    true,
	"fusectl":     true,
	"bpf":         true,
	"nsfs":        true,
	"efivarfs":    true,
	"hugetlbfs":   true,
	"mqueue":      true,
	"binfmt_misc": true,
	"autofs":      true,
}

// MountTable returns the mount points currently known to the system
type MountTable func() ([]string, error)

// SystemMountTable reads the mount table of the running system
func SystemMountTable() ([]string, error) {
	mounts, err := mountinfo.GetMounts(func(info *mountinfo.Info) (skip, stop bool) {
		if skipFSTypes[info.FSType] {
			return true, false
		}
		return false, false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get mount info: %w", err)
	}

	return lo.Map(mounts, func(m *mountinfo.Info, _ int) string {
		return m.Mountpoint
	}), nil
}

// VolumeResolver maps paths to the mount point containing them
type VolumeResolver struct {
	table MountTable
}

// NewVolumeResolver creates a resolver reading mount points from table.
// A nil table means the system mount table.
func NewVolumeResolver(table MountTable) *VolumeResolver {
	if table == nil {
		table = SystemMountTable
	}
	return &VolumeResolver{table: table}
}

// Volumes returns the known mount points in table order without duplicates
func (r *VolumeResolver) Volumes() ([]string, error) {
	mounts, err := r.table()
	if err != nil {
		return nil, err
	}

	points := lo.Uniq(lo.Map(mounts, func(m string, _ int) string {
		return filepath.Clean(m)
	}))
	if len(points) == 0 {
		// If the table is empty, everything is on the root filesystem
		return []string{"/"}, nil
	}
	return points, nil
}

// Resolve returns the mount point for the given path.
// The path does not need to exist: its nearest existing ancestor is used.
func (r *VolumeResolver) Resolve(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	mounts, err := r.table()
	if err != nil {
		return "", err
	}

	target := realAncestor(absPath)

	// Find the longest matching mount point
	var longest string
	for _, m := range mounts {
		m = filepath.Clean(m)
		if !fs.IsWithin(target, m) {
			continue
		}
		if len(m) > len(longest) {
			longest = m
		}
	}

	if longest == "" {
		// If no mount point found, the path must be on the root filesystem
		return "/", nil
	}

	slog.Debug("found mount point", "path", absPath, "mountpoint", longest)
	return longest, nil
}

// realAncestor returns the nearest existing ancestor of path with symlinks resolved
func realAncestor(path string) string {
	current := path
	for {
		if _, err := os.Lstat(current); err == nil || !errors.Is(err, os.ErrNotExist) {
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	real, err := filepath.EvalSymlinks(current)
	if err != nil {
		return current
	}
	return real
}
