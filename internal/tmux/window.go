package tmux

import (
	"context"
	"os"
	"strconv"
	"strings"
)

// WindowOptions describes a window to open for a launched tool.
type WindowOptions struct {
	Session string
	Name    string
	Dir     string
	Command []string
}

// NewWindow opens a window running opts.Command in opts.Dir.
func NewWindow(ctx context.Context, socketPath string, opts WindowOptions) error {
	args := []string{"new-window"}
	if s := strings.TrimSpace(opts.Session); s != "" {
		args = append(args, "-t", s+":")
	}
	if opts.Name != "" {
		args = append(args, "-n", opts.Name)
	}
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	if len(opts.Command) > 0 {
		args = append(args, "--")
		args = append(args, opts.Command...)
	}
	return run(ctx, socketPath, args...)
}

// ResizePane resizes the pane the launcher runs in to width x height cells.
func ResizePane(ctx context.Context, socketPath string, width, height int) error {
	args := []string{"resize-pane"}
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		args = append(args, "-t", pane)
	}
	args = append(args, "-x", strconv.Itoa(width), "-y", strconv.Itoa(height))
	return run(ctx, socketPath, args...)
}
