// Package config loads the editor configuration.
//
// Settings are layered from lowest to highest precedence: built-in
// defaults, a TOML file, HECTO_* environment variables, and finally
// command-line overrides applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/hecto/internal/config/loader"
	"github.com/dshills/hecto/internal/logging"
)

// Terminal backend names.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "hecto"

// Config is the complete editor configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Terminal TerminalConfig `toml:"terminal"`
	Log      LogConfig      `toml:"log"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

// EditorConfig holds screen drawing settings.
type EditorConfig struct {
	Placeholder string `toml:"placeholder"`
}

// TerminalConfig selects the terminal implementation.
type TerminalConfig struct {
	Backend string `toml:"backend"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor:   EditorConfig{Placeholder: "~"},
		Terminal: TerminalConfig{Backend: BackendANSI},
		Log:      LogConfig{Level: logging.LevelInfo.String()},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hecto/config.toml, falling back to
// the platform user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "hecto", "config.toml"), nil
}

// envOverrides mirrors the settings that can come from the environment.
type envOverrides struct {
	Backend     string `split_words:"true"`
	Placeholder string `split_words:"true"`
	LogLevel    string `split_words:"true"`
	LogFile     string `split_words:"true"`
}

// Loader assembles a Config from its sources.
type Loader struct {
	toml        *loader.TOMLLoader
	env         *loader.EnvLoader
	defaultPath func() (string, error)
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader() *Loader {
	return NewLoaderWithFS(loader.DefaultFS())
}

// NewLoaderWithFS creates a loader reading files from fsys.
func NewLoaderWithFS(fsys loader.FileSystem) *Loader {
	return &Loader{
		toml:        loader.NewTOMLLoaderWithFS(fsys),
		env:         loader.NewEnvLoader(EnvPrefix),
		defaultPath: DefaultPath,
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path selects DefaultPath, which may be absent; an
// explicit path must exist. The result is not validated.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if err := l.loadFile(cfg, path); err != nil {
		return nil, err
	}

	env := envOverrides{
		Backend:     cfg.Terminal.Backend,
		Placeholder: cfg.Editor.Placeholder,
		LogLevel:    cfg.Log.Level,
		LogFile:     cfg.Log.File,
	}
	if err := l.env.LoadInto(&env); err != nil {
		return nil, err
	}
	cfg.Terminal.Backend = env.Backend
	cfg.Editor.Placeholder = env.Placeholder
	cfg.Log.Level = env.LogLevel
	cfg.Log.File = env.LogFile

	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		p, err := l.defaultPath()
		if err != nil {
			// No config directory means no default file.
			return nil
		}
		path = p
	}

	found, err := l.toml.LoadFile(path, cfg)
	if err != nil {
		return err
	}
	if !found {
		if explicit {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil
	}
	cfg.Path = path
	return nil
}

// Load builds the configuration using the OS file system.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Overrides are command-line settings. Nil fields are left unchanged.
type Overrides struct {
	Backend     *string
	Placeholder *string
	LogLevel    *string
	LogFile     *string
}

// Apply overwrites the settings present in o.
func (c *Config) Apply(o Overrides) {
	if o.Backend != nil {
		c.Terminal.Backend = *o.Backend
	}
	if o.Placeholder != nil {
		c.Editor.Placeholder = *o.Placeholder
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
	if o.LogFile != nil {
		c.Log.File = *o.LogFile
	}
}

// Validate checks every setting and reports all failures.
func (c *Config) Validate() error {
	var errs []error

	switch c.Terminal.Backend {
	case BackendANSI, BackendTcell:
	default:
		errs = append(errs, &ValidationError{Path: "terminal.backend", Value: c.Terminal.Backend, Err: ErrInvalidBackend})
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "log.level", Value: c.Log.Level, Err: ErrInvalidLogLevel})
	}

	if !validPlaceholder(c.Editor.Placeholder) {
		errs = append(errs, &ValidationError{Path: "editor.placeholder", Value: c.Editor.Placeholder, Err: ErrInvalidPlaceholder})
	}

	return errors.Join(errs...)
}

// LoggingConfig converts the log section for the logging package.
func (c *Config) LoggingConfig() (logging.Config, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return logging.Config{}, &ValidationError{Path: "log.level", Value: c.Log.Level, Err: ErrInvalidLogLevel}
	}
	return logging.Config{Level: level, File: c.Log.File}, nil
}

// parseLevel accepts exactly the four canonical level names.
func parseLevel(s string) (logging.Level, error) {
	level, err := logging.ParseLevel(s)
	if err != nil {
		return level, err
	}
	if level.String() != s {
		return level, fmt.Errorf("non-canonical log level %q", s)
	}
	return level, nil
}

// validPlaceholder reports whether s is one printable rune one cell wide.
func validPlaceholder(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsPrint(r) && runewidth.RuneWidth(r) == 1
}
