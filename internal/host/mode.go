package host

import (
	"fmt"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/tmux"
)

// Modes accepted by New.
const (
	ModeAuto = "auto"
	ModeExec = "exec"
	ModeTmux = "tmux"
)

// Options configures New.
type Options struct {
	Mode     string
	Socket   string
	Terminal []string
	Commands Commands
}

// New builds the host for opts.Mode. Auto picks tmux when running inside a
// tmux client.
func New(opts Options) (Host, error) {
	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	if mode == "" || mode == ModeAuto {
		mode = ModeExec
		if tmux.Available() {
			mode = ModeTmux
		}
	}
	switch mode {
	case ModeExec:
		return NewProcess(opts.Terminal, opts.Commands), nil
	case ModeTmux:
		return NewTmux(opts.Socket, opts.Commands)
	default:
		return nil, fmt.Errorf("unknown host mode %q", opts.Mode)
	}
}
