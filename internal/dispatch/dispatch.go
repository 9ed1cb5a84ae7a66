// Package dispatch turns launcher triggers (a tool key, a drop at a screen
// position, a git subcommand) into a single host invocation. It reads the
// committed configuration and the ephemeral selection and never writes
// either.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/logging/events"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/state"
)

// Source provides the committed Configuration.
type Source interface {
	Committed() settings.Configuration
}

// TargetLocator finds the launch target under a point in the active tab.
type TargetLocator interface {
	TargetAt(layout.Point) (layout.Target, bool)
}

// Launcher is the host launch capability.
type Launcher interface {
	Launch(ctx context.Context, command, path string) error
}

// GitRunner is the host git capability.
type GitRunner interface {
	RunGit(ctx context.Context, cwd string, args []string) (string, error)
}

// Launch is a resolved tool invocation.
type Launch struct {
	Command string
	Path    string
}

// Git is a resolved git invocation.
type Git struct {
	Cwd  string
	Args []string
}

// Drop is a drag-and-drop gesture: the dropped paths and where they landed.
type Drop struct {
	Paths    []string
	Position layout.Point
}

// Resolver maps launcher triggers to host invocations. Every call reads the
// current committed Configuration from its Source.
type Resolver struct {
	source    Source
	selection state.Selection
	targets   TargetLocator
}

// NewResolver returns a Resolver reading slots from source. selection may be
// nil, meaning slot 0 and no repo; targets may be nil, which turns every drop
// into ErrNoTarget.
func NewResolver(source Source, selection state.Selection, targets TargetLocator) *Resolver {
	return &Resolver{source: source, selection: selection, targets: targets}
}

// ResolveLaunch picks the checked slot of tool (slot 0 unless the user chose
// otherwise) and returns its path as stored. A blank path is an error.
func (r *Resolver) ResolveLaunch(tool settings.Tool) (Launch, error) {
	cfg := r.source.Committed()
	slots, ok := cfg.Slots(tool)
	if !ok {
		return Launch{}, fmt.Errorf("%w: %q", ErrUnknownTool, tool)
	}
	index := 0
	if r.selection != nil {
		index = r.selection.ToolIndex(tool)
	}
	if index < 0 || index >= len(slots) {
		index = 0
	}
	path := slots[index].Path
	if strings.TrimSpace(path) == "" {
		events.Launch.MissingPath(string(tool), index)
		return Launch{}, &MissingPathError{Tool: string(tool), Slot: index}
	}
	events.Launch.Request(string(tool), index, path)
	return Launch{Command: string(tool), Path: path}, nil
}

// ResolveDragDrop maps a drop onto the launch target under point. The target
// position within the active tab's current target list selects the tool;
// the first dropped path is the working directory.
func (r *Resolver) ResolveDragDrop(point layout.Point, paths []string) (Launch, error) {
	events.Drop.Received(len(paths), point.X, point.Y)
	path := ""
	if len(paths) > 0 {
		path = strings.TrimSpace(paths[0])
	}
	if path == "" || r.targets == nil {
		events.Drop.NoTarget(point.X, point.Y)
		return Launch{}, ErrNoTarget
	}
	target, ok := r.targets.TargetAt(point)
	if !ok || target.Index < 0 || target.Index >= len(settings.Tools) {
		events.Drop.NoTarget(point.X, point.Y)
		return Launch{}, ErrNoTarget
	}
	tool := settings.Tools[target.Index]
	events.Drop.Resolved(string(tool), path)
	return Launch{Command: string(tool), Path: path}, nil
}

// ResolveGitCommand resolves the working directory of the selected repo.
// A selection pointing at an unset slot counts as no selection.
func (r *Resolver) ResolveGitCommand(subcommand string, args []string) (Git, error) {
	subcommand = strings.TrimSpace(subcommand)
	if subcommand == "" {
		return Git{}, ErrEmptyCommand
	}
	index, ok := 0, false
	if r.selection != nil {
		index, ok = r.selection.Repo()
	}
	cfg := r.source.Committed()
	if !ok || index < 0 || index >= len(cfg.GitRepos) || cfg.GitRepos[index].Unset() {
		events.Git.NoRepo(subcommand)
		return Git{}, ErrNoRepoSelected
	}
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, subcommand)
	argv = append(argv, args...)
	cwd := strings.TrimSpace(cfg.GitRepos[index].Path)
	events.Git.Request(cwd, argv)
	return Git{Cwd: cwd, Args: argv}, nil
}

// LaunchTool resolves tool and forwards it to the host.
func (r *Resolver) LaunchTool(ctx context.Context, host Launcher, tool settings.Tool) (Launch, error) {
	launch, err := r.ResolveLaunch(tool)
	if err != nil {
		return Launch{}, err
	}
	return launch, Forward(ctx, host, launch)
}

// LaunchDrop resolves drop and, when it hit a target, forwards it to the
// host. A drop outside every target returns ErrNoTarget without a host call.
func (r *Resolver) LaunchDrop(ctx context.Context, host Launcher, drop Drop) (Launch, error) {
	launch, err := r.ResolveDragDrop(drop.Position, drop.Paths)
	if err != nil {
		return Launch{}, err
	}
	return launch, Forward(ctx, host, launch)
}

// RunGit resolves and runs a git command in the selected repo.
func (r *Resolver) RunGit(ctx context.Context, host GitRunner, subcommand string, args []string) (string, error) {
	git, err := r.ResolveGitCommand(subcommand, args)
	if err != nil {
		return "", err
	}
	return ForwardGit(ctx, host, git)
}

// Forward hands an already resolved launch to the host.
func Forward(ctx context.Context, host Launcher, launch Launch) error {
	err := host.Launch(ctx, launch.Command, launch.Path)
	events.Launch.Result(launch.Command, launch.Path, err)
	return err
}

// ForwardGit runs an already resolved git command on the host.
func ForwardGit(ctx context.Context, host GitRunner, git Git) (string, error) {
	out, err := host.RunGit(ctx, git.Cwd, git.Args)
	events.Git.Result(git.Cwd, git.Args, len(out), err)
	return out, err
}
