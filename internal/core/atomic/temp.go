package atomic

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// tempSibling returns an unused name next to dst for staging a copy
func tempSibling(dst string) string {
	return filepath.Join(
		filepath.Dir(dst),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), uuid.New().String()),
	)
}

// cleanup removes a staged copy
func cleanup(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove staged copy %q: %w", path, err)
	}
	return nil
}
