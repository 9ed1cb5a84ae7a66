// Package host implements the capabilities the launcher core delegates to
// its environment: opening a tool in a new terminal, running git, and
// resizing the window.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/atomicstack/cli-launcher/internal/settings"
)

// ErrPathNotFound is returned by Launch when the working directory does not
// exist.
var ErrPathNotFound = errors.New("path does not exist")

// Host is the command boundary used by the UI and the CLI.
type Host interface {
	Launch(ctx context.Context, command, path string) error
	RunGit(ctx context.Context, cwd string, args []string) (string, error)
	ResizeWindow(ctx context.Context, width, height int) error
}

// CommandError is a failed host command along with whatever it printed.
type CommandError struct {
	Op     string
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s failed: %v", e.Op, strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += " (" + out + ")"
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Commands maps a tool key to the argv that starts it.
type Commands map[string][]string

// DefaultCommands runs each tool by its own name.
func DefaultCommands() Commands {
	out := make(Commands, len(settings.Tools))
	for _, tool := range settings.Tools {
		out[string(tool)] = []string{string(tool)}
	}
	return out
}

// ParseCommands turns a key → command line table (as written in the config
// file) into argv form using shell quoting rules. Blank entries keep the
// default.
func ParseCommands(table map[string]string) (Commands, error) {
	out := DefaultCommands()
	for key, line := range table {
		tool, ok := settings.ParseTool(key)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q in command table", key)
		}
		fields, err := shlex.Split(line, true)
		if err != nil {
			return nil, fmt.Errorf("command for %s: %w", tool, err)
		}
		if len(fields) == 0 {
			continue
		}
		out[string(tool)] = fields
	}
	return out, nil
}

func (c Commands) resolve(command string) ([]string, error) {
	argv, ok := c[command]
	if !ok || len(argv) == 0 {
		return nil, fmt.Errorf("unknown command %q", command)
	}
	return append([]string(nil), argv...), nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return nil
}
