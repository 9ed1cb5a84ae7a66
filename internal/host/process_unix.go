//go:build !windows

package host

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

func defaultTerminal() []string {
	if term := strings.Fields(os.Getenv("TERMINAL")); len(term) > 0 {
		return append(term, "-e")
	}
	if runtime.GOOS == "darwin" {
		return []string{"open", "-a", "Terminal.app", "--args"}
	}
	return []string{"x-terminal-emulator", "-e"}
}

// terminalCommand appends a shell line that enters path and replaces itself
// with the tool to the configured terminal argv.
func (p *Process) terminalCommand(_ context.Context, path string, argv []string) *exec.Cmd {
	full := append(append([]string(nil), p.Terminal...), "sh", "-c", ShellLine(path, argv))
	cmd := exec.Command(full[0], full[1:]...)
	cmd.Dir = path
	return cmd
}

// ShellLine is the POSIX shell line run inside the new terminal.
func ShellLine(path string, argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shQuote(a)
	}
	return "cd " + shQuote(path) + " && exec " + strings.Join(quoted, " ")
}

func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
