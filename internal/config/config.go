package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/trashcan/internal/utils/duration"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core    Core    `yaml:"core"`
	Logging Logging `yaml:"logging"`
}

type Core struct {
	// HomeFallback lets put fall back to the home trash when the volume
	// of a file has no usable trash directory
	HomeFallback bool    `yaml:"home_fallback"`
	Trash        Trash   `yaml:"trash"`
	Restore      Restore `yaml:"restore"`
	Empty        Empty   `yaml:"empty"`
}

type Trash struct {
	HomeTrashDir string `yaml:"home_trash_dir" validate:"omitempty,validDirPath"`
	HomeOnly     bool   `yaml:"home_only"`
}

type Restore struct {
	Verbose bool `yaml:"verbose"`
}

type Empty struct {
	OlderThan string        `yaml:"older_than" validate:"validDuration"`
	Exclude   ExcludeConfig `yaml:"exclude"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns"`
	Globs    []string   `yaml:"globs"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"validSize"`
	Max string `yaml:"max" validate:"validSize"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"validLevel"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

// OlderThanDuration returns core.empty.older_than, or zero when unset
func (e Empty) OlderThanDuration() (time.Duration, error) {
	if strings.TrimSpace(e.OlderThan) == "" {
		return 0, nil
	}
	return duration.Parse(e.OlderThan)
}

// ExpandedHomeTrashDir returns core.trash.home_trash_dir with "~" and
// environment variables expanded, or "" when unset
func (t Trash) ExpandedHomeTrashDir(home string) (string, error) {
	if t.HomeTrashDir == "" {
		return "", nil
	}
	return expandPath(t.HomeTrashDir, home)
}

type configError struct {
	configPath string
	parser     parser
	err        error
}

type parser struct {
	path string
}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(Default())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't load the "%s" config file.
		Please try again after fixing it or specifying a valid config path.
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) createConfigFile() error {
	if err := p.ensureDirExists(filepath.Dir(p.path)); err != nil {
		return err
	}

	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", p.path)
		f, err := os.OpenFile(p.path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := f.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return err
		}
	}
	return nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (p parser) readConfigFile() (Config, error) {
	// Unset keys keep their defaults
	cfg := Default()
	data, err := os.ReadFile(p.path)
	if err != nil {
		return cfg, configError{
			configPath: p.path,
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return cfg, fmt.Errorf("validation error: field %s, %q is invalid", verrs[0].Namespace(), verrs[0].Value())
		}
		return cfg, err
	}
	return cfg, nil
}

func initParser(path string) parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validSize)
	_ = validate.RegisterValidation("validDuration", validDuration)
	_ = validate.RegisterValidation("validLevel", validLevel)
	_ = validate.RegisterValidation("validDirPath", validDirPath)

	return parser{path: path}
}

// Parse loads the config file at path. When create is set and the file does
// not exist, it is written with the default contents first.
func Parse(path string, create bool) (Config, error) {
	parser := initParser(path)

	if create {
		if err := parser.createConfigFile(); err != nil {
			return Default(), parsingError{err: configError{
				configPath: path,
				parser:     parser,
				err:        err,
			}}
		}
	}
	slog.Debug("config file found", "config-file", path)

	cfg, err := parser.readConfigFile()
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
