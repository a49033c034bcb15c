package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/hecto/internal/config"
	"github.com/dshills/hecto/internal/editor"
	"github.com/dshills/hecto/internal/logging"
	"github.com/dshills/hecto/internal/terminal"
)

const productName = "Hecto"

// terminalFactory creates the terminal for a backend name.
type terminalFactory func(backend string) (terminal.Terminal, error)

// rootFlags holds the raw command-line values.
type rootFlags struct {
	configPath  string
	backend     string
	placeholder string
	logLevel    string
	logFile     string
}

func newRootCommand(newTerm terminalFactory) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "hecto",
		Short: "A minimal terminal screen editor",
		Long: `Hecto takes over the terminal, draws a column of placeholder rows with a
welcome banner, and lets you move the caret with the arrow keys, Home, End,
Page Up and Page Down. Press Ctrl+Q to quit.`,
		Args:          cobra.NoArgs,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runEditor(cfg, newTerm)
		},
	}
	cmd.SetVersionTemplate("hecto {{.Version}}\n")

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to configuration file (default $XDG_CONFIG_HOME/hecto/config.toml)")
	f.StringVarP(&flags.backend, "backend", "b", config.BackendANSI, "terminal backend (ansi, tcell)")
	f.StringVar(&flags.placeholder, "placeholder", "~", "glyph drawn on empty rows")
	f.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&flags.logFile, "log-file", "", "append logs to this file")

	return cmd
}

func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

// loadConfig layers the command-line flags that were actually set on top of
// the file and environment configuration, then validates the result.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg.Apply(overridesFromFlags(cmd, flags))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func overridesFromFlags(cmd *cobra.Command, flags rootFlags) config.Overrides {
	var o config.Overrides
	changed := cmd.Flags().Changed

	if changed("backend") {
		o.Backend = &flags.backend
	}
	if changed("placeholder") {
		o.Placeholder = &flags.placeholder
	}
	if changed("log-level") {
		o.LogLevel = &flags.logLevel
	}
	if changed("log-file") {
		o.LogFile = &flags.logFile
	}
	return o
}

func runEditor(cfg *config.Config, newTerm terminalFactory) error {
	logCfg, err := cfg.LoggingConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	logging.SetLogger(logger)
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		"path", cfg.Path,
		"backend", cfg.Terminal.Backend,
		"version", version,
		"commit", commit,
	)

	term, err := newTerm(cfg.Terminal.Backend)
	if err != nil {
		logger.Error("creating terminal failed", "error", err)
		return fmt.Errorf("creating terminal: %w", err)
	}

	ed := editor.New(term, editor.Options{
		Name:        productName,
		Version:     version,
		Placeholder: cfg.Editor.Placeholder,
		Logger:      logger,
	})
	return ed.Run()
}

// newTerminal creates the terminal attached to the process stdin and stdout.
func newTerminal(backend string) (terminal.Terminal, error) {
	switch backend {
	case config.BackendTcell:
		t, err := terminal.NewTcell()
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.BackendANSI:
		return terminal.NewANSI(os.Stdin, os.Stdout), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, backend)
	}
}
