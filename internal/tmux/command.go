package tmux

import (
	"context"
	"fmt"
	"strings"
)

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

func run(ctx context.Context, socketPath string, args ...string) error {
	full := append(baseArgs(socketPath), args...)
	output, err := runExecCommand(ctx, "tmux", full...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("tmux %s: %w (%s)", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
