package core

import (
	"errors"
	"fmt"
)

// Common errors returned by the trash components
var (
	ErrNotFound         = errors.New("file not found in trash")
	ErrFileExists       = errors.New("file already exists")
	ErrOrphan           = errors.New("trash info has no matching file")
	ErrOutOfRange       = errors.New("selection out of range")
	ErrCrossDevice      = errors.New("cross-device operation not supported")
	ErrPermissionDenied = errors.New("permission denied")
)

// ParseErrorKind classifies why a record failed to decode
type ParseErrorKind int

const (
	BadHeader ParseErrorKind = iota
	BadPath
)

func (k ParseErrorKind) String() string {
	switch k {
	case BadHeader:
		return "bad header"
	case BadPath:
		return "bad path"
	}
	return "unknown"
}

// ParseError is returned when a .trashinfo record cannot be decoded
type ParseError struct {
	Kind ParseErrorKind
	Path string // Path of the record, if known
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Path == "" {
		return "parse: " + msg
	}
	return fmt.Sprintf("parse %s: %s", e.Path, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StorageError wraps an error with additional context about the storage operation
type StorageError struct {
	Op   string // Operation that failed (e.g., "put", "restore", "remove")
	Path string // Path of the file that caused the error
	Err  error  // The underlying error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, path string, err error) error {
	return &StorageError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsFileExists returns true if the error is ErrFileExists
func IsFileExists(err error) bool {
	return errors.Is(err, ErrFileExists)
}

// IsOrphan returns true if the error is ErrOrphan
func IsOrphan(err error) bool {
	return errors.Is(err, ErrOrphan)
}

// IsOutOfRange returns true if the error is ErrOutOfRange
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// AsParseError returns the ParseError in err's chain, if any
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
