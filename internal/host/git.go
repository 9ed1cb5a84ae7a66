package host

import (
	"context"
	"os/exec"
	"strings"
)

var gitCommand = func(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// RunGit executes git in dir and returns its combined output. On failure the
// output is returned as well and wrapped into the *CommandError.
func RunGit(ctx context.Context, dir string, args []string) (string, error) {
	if err := checkDir(dir); err != nil {
		return "", err
	}
	output, err := gitCommand(ctx, dir, args...)
	if err != nil {
		return string(output), &CommandError{Op: "git", Args: args, Output: string(output), Err: err}
	}
	return string(output), nil
}

// RepoStatus reports the checked-out branch of dir and whether its working
// tree has uncommitted changes.
func RepoStatus(ctx context.Context, dir string) (string, bool, error) {
	branch, err := RunGit(ctx, dir, []string{"symbolic-ref", "--short", "HEAD"})
	if err != nil {
		// Detached HEAD has no symbolic ref.
		branch, err = RunGit(ctx, dir, []string{"rev-parse", "--short", "HEAD"})
		if err != nil {
			return "", false, err
		}
	}
	status, err := RunGit(ctx, dir, []string{"status", "--porcelain"})
	if err != nil {
		return strings.TrimSpace(branch), false, err
	}
	return strings.TrimSpace(branch), strings.TrimSpace(status) != "", nil
}
