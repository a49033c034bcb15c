// Package editor drives the read-evaluate-redraw loop of the screen editor.
// It owns the session state (quit flag and caret position) and delegates all
// screen I/O to a terminal.Terminal.
package editor

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dshills/hecto/internal/logging"
	"github.com/dshills/hecto/internal/terminal"
)

// Default banner and row values.
const (
	DefaultName        = "Hecto"
	DefaultVersion     = "dev"
	DefaultPlaceholder = "~"
)

// Options configures the editor.
type Options struct {
	// Name is the product name shown in the welcome banner.
	Name string

	// Version is the version shown in the welcome banner.
	Version string

	// Placeholder is drawn at the start of every empty row.
	Placeholder string

	// Logger receives session diagnostics. Defaults to logging.GetLogger().
	Logger *logging.Logger
}

// DefaultOptions returns the default editor options.
func DefaultOptions() Options {
	return Options{
		Name:        DefaultName,
		Version:     DefaultVersion,
		Placeholder: DefaultPlaceholder,
	}
}

// Editor holds the session state of one editing session.
type Editor struct {
	term terminal.Terminal
	opts Options
	log  *logging.Logger

	session    string
	shouldQuit bool
	position   terminal.Position
}

// New creates an editor drawing to term. Empty options fall back to their
// defaults.
func New(term terminal.Terminal, opts Options) *Editor {
	defaults := DefaultOptions()
	if opts.Name == "" {
		opts.Name = defaults.Name
	}
	if opts.Version == "" {
		opts.Version = defaults.Version
	}
	if opts.Placeholder == "" {
		opts.Placeholder = defaults.Placeholder
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}

	session := uuid.NewString()
	return &Editor{
		term:    term,
		opts:    opts,
		session: session,
		log:     logger.WithComponent("editor").WithField("session", session),
	}
}

// Run initializes the terminal, runs the loop until quit, and terminates the
// terminal on every exit path. A loop error is returned after cleanup; a
// terminate error is joined to it.
func (e *Editor) Run() (err error) {
	e.log.Info("session started", "name", e.opts.Name, "version", e.opts.Version)

	defer func() {
		termErr := e.term.Terminate()
		if termErr != nil {
			e.log.Error("terminate failed", "error", termErr)
		}
		switch {
		case err == nil:
			err = termErr
		case termErr != nil:
			err = errors.Join(err, termErr)
		}
		e.log.Info("session ended", "error", err)
		_ = e.log.Sync()
	}()

	if err := e.term.Initialize(); err != nil {
		e.log.Error("initialize failed", "error", err)
		return err
	}

	return e.repl()
}

// repl draws a frame, stops after the goodbye frame, and otherwise blocks for
// exactly one event.
func (e *Editor) repl() error {
	for {
		if err := e.RefreshScreen(); err != nil {
			e.log.Error("refresh failed", "error", err)
			return err
		}
		if e.shouldQuit {
			return nil
		}

		ev, err := e.term.ReadEvent()
		if err != nil {
			e.log.Error("read event failed", "error", err)
			return err
		}
		if err := e.EvaluateEvent(ev); err != nil {
			e.log.Error("evaluate failed", "error", err, "event", ev.Type.String())
			return err
		}
	}
}

// Position returns the current caret position.
func (e *Editor) Position() terminal.Position {
	return e.position
}

// ShouldQuit reports whether the quit intent has been received.
func (e *Editor) ShouldQuit() bool {
	return e.shouldQuit
}

// Session returns the session identifier used in log entries.
func (e *Editor) Session() string {
	return e.session
}
