package xdg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/utils/fs"
)

const (
	// According to XDG spec
	trashInfoHeader = "[Trash Info]"
	timeFormat      = "2006-01-02T15:04:05"

	displayFormat = "2006-01-02 15:04:05"
	unknownDate   = "????-??-?? ??:??:??"

	maxLineSize = 1024 * 1024
)

// TrashInfo represents the contents of a .trashinfo file
type TrashInfo struct {
	// Path is the original path of the file, can be absolute or relative
	// to the top directory of the volume holding the trash
	Path string

	// DeletionDate is when the file was moved to trash.
	// Zero when the record has no parsable DeletionDate.
	DeletionDate time.Time
}

// Encode renders a .trashinfo record for the given path and deletion time
func Encode(path string, deletedAt time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintln(&b, trashInfoHeader)
	fmt.Fprintf(&b, "Path=%s\n", encodeTrashPath(path))
	if !deletedAt.IsZero() {
		fmt.Fprintf(&b, "DeletionDate=%s\n", deletedAt.In(time.Local).Format(timeFormat))
	}
	return b.Bytes()
}

// Decode parses a .trashinfo record.
// A missing header or Path is an error, a missing or broken DeletionDate is not:
// the payload is still restorable, the date is just unknown.
func Decode(r io.Reader) (*TrashInfo, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	info := &TrashInfo{}
	var headerFound, pathFound bool
	var pathErr error

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if line == trashInfoHeader {
			headerFound = true
			continue
		}

		// Skip until header is found
		if !headerFound {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Path":
			if pathFound {
				continue
			}
			pathFound = true
			path, err := url.PathUnescape(value)
			if err != nil {
				pathErr = fmt.Errorf("invalid Path encoding: %w", err)
				continue
			}
			info.Path = path

		case "DeletionDate":
			if !info.DeletionDate.IsZero() {
				continue
			}
			date, err := time.ParseInLocation(timeFormat, value, time.Local)
			if err != nil {
				slog.Debug("unparsable DeletionDate", "value", value, "error", err)
				continue
			}
			info.DeletionDate = date
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading info file: %w", err)
	}

	if !headerFound {
		return nil, &core.ParseError{Kind: core.BadHeader, Err: errors.New("missing [Trash Info] header")}
	}
	if pathErr != nil {
		return nil, &core.ParseError{Kind: core.BadPath, Err: pathErr}
	}
	if info.Path == "" {
		return nil, &core.ParseError{Kind: core.BadPath, Err: errors.New("missing Path field")}
	}

	return info, nil
}

// AbsolutePath returns the original location of the file.
// A relative Path is resolved against the volume the trash lives on.
func (i *TrashInfo) AbsolutePath(volume string) string {
	if filepath.IsAbs(i.Path) {
		return i.Path
	}
	if volume == "" {
		return i.Path
	}
	return filepath.Join(volume, i.Path)
}

// Save writes the record to path, refusing to replace an existing file
func (i *TrashInfo) Save(path string) error {
	f, err := fs.CreateExclusive(path, 0600)
	if err != nil {
		return fmt.Errorf("failed to create info file: %w", err)
	}

	if _, err := f.Write(Encode(i.Path, i.DeletionDate)); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write info file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close info file: %w", err)
	}
	return nil
}

// LoadInfo loads and parses a .trashinfo file
func LoadInfo(path string) (*TrashInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open info file: %w", err)
	}
	defer f.Close()

	info, err := Decode(f)
	if err != nil {
		if pe, ok := core.AsParseError(err); ok {
			pe.Path = path
		}
		return nil, err
	}
	return info, nil
}

// FormatDeletionDate renders a deletion date for listings.
// Records without a usable date get a placeholder instead of a fake time.
func FormatDeletionDate(t time.Time) string {
	if t.IsZero() {
		return unknownDate
	}
	return t.In(time.Local).Format(displayFormat)
}

// encodeTrashPath percent-encodes every byte except unreserved characters
// and the path separator, so that the value fits on a single line
func encodeTrashPath(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if shouldKeep(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~', c == '/':
		return true
	}
	return false
}
