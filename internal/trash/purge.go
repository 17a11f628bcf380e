package trash

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
)

// Purger permanently deletes trashed files
type Purger struct {
	clock Clock
}

// PurgeFailure is a file that could not be removed
type PurgeFailure struct {
	File *core.File
	Err  error
}

// EmptyResult reports what an empty or prune operation did
type EmptyResult struct {
	Removed []*core.File
	Failed  []PurgeFailure
}

func NewPurger(clock Clock) *Purger {
	if clock == nil {
		clock = RealClock{}
	}
	return &Purger{clock: clock}
}

// Remove deletes the payload and then the record of file. If the payload
// can't be deleted the record is left as is. A missing payload only
// removes the record.
func (p *Purger) Remove(file *core.File) error {
	if _, err := os.Lstat(file.TrashPath); err == nil {
		if err := os.RemoveAll(file.TrashPath); err != nil {
			return core.NewStorageError("remove", file.TrashPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return core.NewStorageError("remove", file.TrashPath, err)
	}

	if err := os.Remove(file.InfoPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return core.NewStorageError("remove", file.InfoPath, err)
	}

	slog.Debug("removed from trash", "path", file.OriginalPath, "trash", file.TrashPath)
	return nil
}

// ErrNotOrphaned means a payload appeared for a record scanned as orphaned
var ErrNotOrphaned = errors.New("no longer orphaned")

// RemoveOrphanRecord removes the record of an orphaned file. The payload is
// checked again right before, and if it exists now nothing is removed.
func (p *Purger) RemoveOrphanRecord(file *core.File) error {
	if _, err := os.Lstat(file.TrashPath); err == nil {
		return core.NewStorageError("prune", file.TrashPath, ErrNotOrphaned)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return core.NewStorageError("prune", file.TrashPath, err)
	}

	if err := os.Remove(file.InfoPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return core.NewStorageError("prune", file.InfoPath, err)
	}

	slog.Debug("pruned orphaned record", "path", file.OriginalPath, "info", file.InfoPath)
	return nil
}

// Select returns the trashed files of dirs chosen by opts
func (p *Purger) Select(dirs []core.Directory, opts FilterOptions) ([]*core.File, error) {
	var files []*core.File
	for entry := range xdg.ScanAll(dirs) {
		if entry.Kind == core.EntryFile {
			files = append(files, entry.File)
		}
	}
	return Filter(files, p.clock.Now(), opts)
}

// Empty removes the trashed files of dirs selected by opts. A failure on one
// file is recorded and the rest are still processed.
func (p *Purger) Empty(dirs []core.Directory, opts FilterOptions) (EmptyResult, error) {
	selected, err := p.Select(dirs, opts)
	if err != nil {
		return EmptyResult{}, err
	}
	return p.RemoveAll(selected), nil
}

// PruneOrphans removes the records whose payload is gone
func (p *Purger) PruneOrphans(dirs []core.Directory) EmptyResult {
	var orphans []*core.File
	for entry := range xdg.ScanAll(dirs) {
		if entry.Kind == core.EntryOrphan {
			orphans = append(orphans, entry.File)
		}
	}
	return p.RemoveOrphans(orphans)
}

// RemoveAll removes each of files, collecting failures
func (p *Purger) RemoveAll(files []*core.File) EmptyResult {
	return removeEach(files, p.Remove)
}

// RemoveOrphans removes the records of orphans, collecting failures.
// Orphans whose payload has appeared since the scan are kept.
func (p *Purger) RemoveOrphans(orphans []*core.File) EmptyResult {
	return removeEach(orphans, p.RemoveOrphanRecord)
}

func removeEach(files []*core.File, remove func(*core.File) error) EmptyResult {
	var result EmptyResult
	for _, file := range files {
		if err := remove(file); err != nil {
			slog.Warn("failed to remove", "path", file.OriginalPath, "error", err)
			result.Failed = append(result.Failed, PurgeFailure{File: file, Err: err})
			continue
		}
		result.Removed = append(result.Removed, file)
	}
	return result
}
