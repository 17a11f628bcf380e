package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/babarot/trashcan/internal/utils/duration"
	"github.com/go-playground/validator/v10"
)

var sizeRe = regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)

// validSize validates the size format (e.g., "10MB", "1GB"). Empty is acceptable.
func validSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	if value == "" {
		return true
	}
	return sizeRe.MatchString(value)
}

// validDuration accepts durations such as "30d" or "2 weeks". Empty is acceptable.
func validDuration(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := duration.Parse(value)
	return err == nil
}

func validLevel(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	return slices.Contains([]string{"debug", "info", "warn", "error"}, value)
}

// validDirPath accepts a path that is either missing or a directory
func validDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	fi, err := os.Stat(filepath.Clean(os.ExpandEnv(path)))
	if err == nil {
		return fi.IsDir()
	}
	return os.IsNotExist(err)
}

// expandPath expands environment variables and "~" in paths
func expandPath(path, home string) (string, error) {
	if path == "~" {
		path = home
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(home, path[2:])
	}

	path = os.ExpandEnv(path)

	return filepath.Abs(path)
}
