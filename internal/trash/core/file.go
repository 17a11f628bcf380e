package core

import (
	"os"
	"time"
)

// File represents a trashed item: one record paired with its payload
type File struct {
	// Name is the original base name of the file
	Name string

	// OriginalPath is the absolute path where the file was located
	OriginalPath string

	// DeletedAt is when the file was moved to trash.
	// The zero value means the record carries no usable deletion date.
	DeletedAt time.Time

	// InfoPath is the path of the .trashinfo record
	InfoPath string

	// TrashPath is the path of the payload in the files directory
	TrashPath string

	// Dir is the trash directory holding this item
	Dir Directory
}

// HasDeletionDate reports whether the record had a parsable DeletionDate
func (f *File) HasDeletionDate() bool {
	return !f.DeletedAt.IsZero()
}

// Exists checks if the payload is still in the trash
func (f *File) Exists() bool {
	_, err := os.Lstat(f.TrashPath)
	return err == nil
}

func (f *File) GetName() string         { return f.Name }
func (f *File) GetPath() string         { return f.TrashPath }
func (f *File) GetDeletedAt() time.Time { return f.DeletedAt }
