//go:build windows

package host

import (
	"context"
	"os/exec"
	"strings"
	"syscall"
)

const createNewConsole = 0x00000010

func defaultTerminal() []string {
	return []string{"pwsh"}
}

// terminalCommand opens a new PowerShell console in path running the tool.
// The console stays open after the tool exits.
func (p *Process) terminalCommand(ctx context.Context, path string, argv []string) *exec.Cmd {
	shell := "pwsh"
	if len(p.Terminal) > 0 {
		shell = p.Terminal[0]
	}
	cmd := exec.Command(shell, "-NoExit", "-Command", PowerShellLine(path, argv))
	cmd.Dir = path
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewConsole}
	return cmd
}

// PowerShellLine builds the command line run in the new console.
func PowerShellLine(path string, argv []string) string {
	return "Set-Location -LiteralPath " + psQuote(path) + "; " + strings.Join(argv, " ")
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
