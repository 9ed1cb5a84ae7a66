package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Available reports whether the process runs inside a tmux client.
func Available() bool {
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}

// ResolveSocketPath picks the tmux server socket: the explicit value, then
// the server of the enclosing client, then tmux's default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// CurrentSession returns the session of the pane the launcher runs in, or
// the session of the first real client when that cannot be determined.
func CurrentSession(socketPath string) (string, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return "", err
	}
	defer client.Close()
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{session_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name, nil
			}
		}
	}
	clients, err := client.ListClients()
	if err != nil {
		return "", err
	}
	// gotmuxcc's own control-mode connection is attached too; skip it.
	for _, c := range clients {
		if c != nil && !c.ControlMode && c.Session != "" {
			return c.Session, nil
		}
	}
	return "", fmt.Errorf("no attached tmux client")
}
