package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPath is reported when the chosen slot has no path.
	ErrMissingPath = errors.New("path is empty")
	// ErrUnknownTool is reported for a command key outside codex/claude/gemini.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrNoTarget means a drop landed outside every launch target of the
	// active tab. Callers ignore it.
	ErrNoTarget = errors.New("no launch target")
	// ErrNoRepoSelected is reported when a git command runs with no usable
	// repository selected.
	ErrNoRepoSelected = errors.New("no repository selected")
	// ErrEmptyCommand is reported for a git invocation without a subcommand.
	ErrEmptyCommand = errors.New("git subcommand required")
)

// MissingPathError names the tool and slot whose path was empty.
type MissingPathError struct {
	Tool string
	Slot int
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("%s slot %d: %v", e.Tool, e.Slot+1, ErrMissingPath)
}

func (e *MissingPathError) Unwrap() error { return ErrMissingPath }

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingPath):
		return "Path is empty! Please set a path in settings."
	case errors.Is(err, ErrNoRepoSelected):
		return "No repository selected."
	default:
		return err.Error()
	}
}
