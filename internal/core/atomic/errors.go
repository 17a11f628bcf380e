package atomic

import (
	"errors"
	"fmt"
)

var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrSourceNotFound    = errors.New("source not found")
	ErrInvalidPath       = errors.New("empty source or destination path")

	// ErrCopyMismatch means the staged copy differs from the source
	ErrCopyMismatch = errors.New("copy does not match source")

	// ErrSourceNotRemoved means dst is complete but src is still there
	ErrSourceNotRemoved = errors.New("source not removed after copy")
)

// Stage names the step of a move that failed
type Stage string

const (
	StageStat         Stage = "stat"
	StagePrepare      Stage = "prepare"
	StageRename       Stage = "rename"
	StageCopy         Stage = "copy"
	StageVerify       Stage = "verify"
	StageCommit       Stage = "commit"
	StageRemoveSource Stage = "remove source"
)

// MoveError reports which stage of moving Src to Dst failed
type MoveError struct {
	Stage Stage
	Src   string
	Dst   string
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %q to %q: %s: %v", e.Src, e.Dst, e.Stage, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func newMoveError(stage Stage, src, dst string, err error) error {
	return &MoveError{Stage: stage, Src: src, Dst: dst, Err: err}
}

// IsDestinationExists reports whether the move was refused because dst exists
func IsDestinationExists(err error) bool {
	return errors.Is(err, ErrDestinationExists)
}

// IsCommitted reports whether dst was fully written even though the move
// returned an error
func IsCommitted(err error) bool {
	return errors.Is(err, ErrSourceNotRemoved)
}
