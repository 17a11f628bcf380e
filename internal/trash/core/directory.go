package core

import "path/filepath"

// Kind tells which convention a trash directory follows
type Kind int

const (
	// KindHome is $XDG_DATA_HOME/Trash
	KindHome Kind = iota

	// KindVolumeAdmin is $topdir/.Trash/$uid
	KindVolumeAdmin

	// KindVolumeTop is $topdir/.Trash-$uid
	KindVolumeTop
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindVolumeAdmin:
		return "volume-admin"
	case KindVolumeTop:
		return "volume-top"
	}
	return "unknown"
}

// Directory is one trash directory with its info/ and files/ siblings
type Directory struct {
	Root     string
	InfoDir  string
	FilesDir string
	Kind     Kind

	// Volume is the mount point relative record paths are resolved against
	Volume string
}

// NewDirectory lays out a trash directory rooted at root
func NewDirectory(root string, kind Kind, volume string) Directory {
	return Directory{
		Root:     root,
		InfoDir:  filepath.Join(root, "info"),
		FilesDir: filepath.Join(root, "files"),
		Kind:     kind,
		Volume:   volume,
	}
}

// InfoPathFor returns the record path for the given stem
func (d Directory) InfoPathFor(stem string) string {
	return filepath.Join(d.InfoDir, stem+InfoExt)
}

// TrashPathFor returns the payload path for the given stem
func (d Directory) TrashPathFor(stem string) string {
	return filepath.Join(d.FilesDir, stem)
}

// InfoExt is the extension every record file carries
const InfoExt = ".trashinfo"
