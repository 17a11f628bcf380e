package env

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"

	appName = "trashcan"
)

// Environment carries every value the program would otherwise read from
// process globals. It is built once per invocation and passed down.
type Environment struct {
	// Home is $HOME
	Home string

	// DataHome is $XDG_DATA_HOME (defaults to ~/.local/share)
	DataHome string

	// ConfigHome is $XDG_CONFIG_HOME (defaults to ~/.config)
	ConfigHome string

	// Cwd is the working directory, the default query directory for restore
	Cwd string

	// UID is the numeric user id used for per-volume trash directories
	UID int

	ConfigPath string
	LogPath    string
}

// FromOS builds an Environment from the running process.
// Follow https://specifications.freedesktop.org/basedir-spec/latest/
func FromOS() (Environment, error) {
	home := os.Getenv("HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return Environment{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		home = h
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Environment{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	e := Environment{
		Home:       home,
		DataHome:   xdgDir(os.Getenv("XDG_DATA_HOME"), home, defaultXDGDataDirname),
		ConfigHome: xdgDir(os.Getenv("XDG_CONFIG_HOME"), home, defaultXDGConfigDirname),
		Cwd:        cwd,
		UID:        os.Getuid(),
	}
	e.ConfigPath = os.Getenv("TRASHCAN_CONFIG_PATH")
	e.LogPath = os.Getenv("TRASHCAN_LOG_PATH")
	return e.WithDefaults(), nil
}

// WithDefaults fills in the derived paths that are still empty.
func (e Environment) WithDefaults() Environment {
	if e.DataHome == "" {
		e.DataHome = filepath.Join(e.Home, defaultXDGDataDirname)
	}
	if e.ConfigHome == "" {
		e.ConfigHome = filepath.Join(e.Home, defaultXDGConfigDirname)
	}
	if e.ConfigPath == "" {
		e.ConfigPath = filepath.Join(e.ConfigHome, appName, "config.yaml")
	}
	if e.LogPath == "" {
		e.LogPath = filepath.Join(e.DataHome, appName, "debug.log")
	}
	return e
}

// HomeTrashDir returns $XDG_DATA_HOME/Trash
func (e Environment) HomeTrashDir() string {
	return filepath.Join(e.DataHome, "Trash")
}

func xdgDir(value, home, fallback string) string {
	if value != "" {
		if abs, err := filepath.Abs(value); err == nil {
			return abs
		}
		return value
	}
	return filepath.Join(home, fallback)
}
