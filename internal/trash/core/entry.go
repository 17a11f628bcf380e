package core

// EntryKind tags the result of scanning one record
type EntryKind int

const (
	// EntryFile is a decodable record whose payload exists
	EntryFile EntryKind = iota

	// EntryOrphan is a decodable record whose payload is missing
	EntryOrphan

	// EntryMalformed is a record that could not be decoded
	EntryMalformed
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryOrphan:
		return "orphan"
	case EntryMalformed:
		return "malformed"
	}
	return "unknown"
}

// Entry is one item yielded by an index scan.
// File is set for EntryFile and EntryOrphan, Err for EntryOrphan and EntryMalformed.
type Entry struct {
	Kind     EntryKind
	File     *File
	InfoPath string
	Err      error
}
