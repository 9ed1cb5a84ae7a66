package dispatch

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/state"
)

type staticSource struct{ cfg settings.Configuration }

func (s staticSource) Committed() settings.Configuration { return s.cfg }

type fakeHost struct {
	launches []Launch
	gits     []Git
	output   string
	err      error
}

func (f *fakeHost) Launch(_ context.Context, command, path string) error {
	f.launches = append(f.launches, Launch{Command: command, Path: path})
	return f.err
}

func (f *fakeHost) RunGit(_ context.Context, cwd string, args []string) (string, error) {
	f.gits = append(f.gits, Git{Cwd: cwd, Args: args})
	return f.output, f.err
}

func launcherTargets() *layout.Coordinator {
	c := layout.NewCoordinator(nil)
	c.SetTargets(layout.TabLauncher, []layout.Rect{
		{X0: 0, Y0: 0, X1: 30, Y1: 3},
		{X0: 0, Y0: 4, X1: 30, Y1: 7},
		{X0: 0, Y0: 8, X1: 30, Y1: 11},
	})
	return c
}

func TestResolveLaunchUsesSelectedSlot(t *testing.T) {
	cfg := settings.Default()
	cfg.Codex[0].Path = ""
	cfg.Codex[1].Path = "/work"
	sel := state.NewSelection()
	r := NewResolver(staticSource{cfg}, sel, nil)

	sel.SetToolIndex(settings.ToolCodex, 1)
	launch, err := r.ResolveLaunch(settings.ToolCodex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if launch != (Launch{Command: "codex", Path: "/work"}) {
		t.Fatalf("expected codex /work, got %+v", launch)
	}

	sel.SetToolIndex(settings.ToolCodex, 0)
	_, err = r.ResolveLaunch(settings.ToolCodex)
	if !errors.Is(err, ErrMissingPath) {
		t.Fatalf("expected ErrMissingPath, got %v", err)
	}
	var missing *MissingPathError
	if !errors.As(err, &missing) || missing.Tool != "codex" || missing.Slot != 0 {
		t.Fatalf("expected MissingPathError for codex slot 0, got %#v", err)
	}
	if Message(err) != "Path is empty! Please set a path in settings." {
		t.Fatalf("unexpected message %q", Message(err))
	}
}

func TestResolveLaunchWhitespacePathIsMissing(t *testing.T) {
	cfg := settings.Default()
	cfg.Claude[0].Path = "   "
	r := NewResolver(staticSource{cfg}, state.NewSelection(), nil)
	if _, err := r.ResolveLaunch(settings.ToolClaude); !errors.Is(err, ErrMissingPath) {
		t.Fatalf("expected ErrMissingPath, got %v", err)
	}
}

func TestResolveLaunchKeepsStoredPath(t *testing.T) {
	cfg := settings.Default()
	cfg.Codex[0].Path = " /work/with space "
	r := NewResolver(staticSource{cfg}, state.NewSelection(), nil)
	launch, err := r.ResolveLaunch(settings.ToolCodex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if launch.Path != " /work/with space " {
		t.Fatalf("expected stored path unchanged, got %q", launch.Path)
	}
}

func TestResolveLaunchFreshInstallGemini(t *testing.T) {
	r := NewResolver(staticSource{settings.Default()}, state.NewSelection(), nil)
	launch, err := r.ResolveLaunch(settings.ToolGemini)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if launch.Command != "gemini" || launch.Path != settings.Default().Gemini[0].Path {
		t.Fatalf("expected default gemini path, got %+v", launch)
	}
}

func TestResolveLaunchUnknownTool(t *testing.T) {
	r := NewResolver(staticSource{settings.Default()}, nil, nil)
	if _, err := r.ResolveLaunch(settings.Tool("vim")); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestDropOutsideTargetsIssuesNoHostCall(t *testing.T) {
	host := &fakeHost{}
	r := NewResolver(staticSource{settings.Default()}, state.NewSelection(), launcherTargets())
	_, err := r.LaunchDrop(context.Background(), host, Drop{
		Paths:    []string{"/tmp/project"},
		Position: layout.Point{X: 70, Y: 2},
	})
	if !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if len(host.launches) != 0 {
		t.Fatalf("expected no host call, got %+v", host.launches)
	}
}

func TestDropMapsTargetPositionToTool(t *testing.T) {
	host := &fakeHost{}
	r := NewResolver(staticSource{settings.Default()}, state.NewSelection(), launcherTargets())
	launch, err := r.LaunchDrop(context.Background(), host, Drop{
		Paths:    []string{"/tmp/first", "/tmp/second"},
		Position: layout.Point{X: 3, Y: 9},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Launch{Command: "gemini", Path: "/tmp/first"}
	if launch != want || len(host.launches) != 1 || host.launches[0] != want {
		t.Fatalf("expected one gemini launch of /tmp/first, got %+v / %+v", launch, host.launches)
	}
}

func TestDropOnInactiveTabTargetIsIgnored(t *testing.T) {
	targets := launcherTargets()
	targets.Activate(context.Background(), layout.TabGit)
	r := NewResolver(staticSource{settings.Default()}, state.NewSelection(), targets)
	if _, err := r.ResolveDragDrop(layout.Point{X: 1, Y: 1}, []string{"/tmp"}); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget for hidden tab, got %v", err)
	}
}

func TestDropWithoutPaths(t *testing.T) {
	r := NewResolver(staticSource{settings.Default()}, state.NewSelection(), launcherTargets())
	if _, err := r.ResolveDragDrop(layout.Point{X: 1, Y: 1}, nil); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
}

func TestResolveGitCommand(t *testing.T) {
	cfg := settings.Default()
	cfg.GitRepos[1] = settings.GitRepoSlot{Name: "Repo2", Path: "/r2"}
	sel := state.NewSelection()
	r := NewResolver(staticSource{cfg}, sel, nil)

	if _, err := r.ResolveGitCommand("status", nil); !errors.Is(err, ErrNoRepoSelected) {
		t.Fatalf("expected ErrNoRepoSelected, got %v", err)
	}
	sel.SetRepo(0)
	if _, err := r.ResolveGitCommand("status", nil); !errors.Is(err, ErrNoRepoSelected) {
		t.Fatalf("expected unset slot treated as no selection, got %v", err)
	}
	sel.SetRepo(1)
	git, err := r.ResolveGitCommand("log", []string{"--oneline", "-5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if git.Cwd != "/r2" || !reflect.DeepEqual(git.Args, []string{"log", "--oneline", "-5"}) {
		t.Fatalf("unexpected git invocation %+v", git)
	}
	if _, err := r.ResolveGitCommand("  ", nil); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestRunGitForwardsOutput(t *testing.T) {
	cfg := settings.Default()
	cfg.GitRepos[2] = settings.GitRepoSlot{Path: "/r3"}
	sel := state.NewSelection()
	sel.SetRepo(2)
	host := &fakeHost{output: "On branch main\n"}
	out, err := NewResolver(staticSource{cfg}, sel, nil).RunGit(context.Background(), host, "status", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "On branch main\n" || len(host.gits) != 1 || host.gits[0].Cwd != "/r3" {
		t.Fatalf("unexpected result %q %+v", out, host.gits)
	}
}

func TestResolverDoesNotMutateConfiguration(t *testing.T) {
	cfg := settings.Default()
	src := staticSource{cfg}
	r := NewResolver(src, state.NewSelection(), launcherTargets())
	_, _ = r.ResolveLaunch(settings.ToolCodex)
	_, _ = r.ResolveDragDrop(layout.Point{X: 1, Y: 1}, []string{"/x"})
	_, _ = r.ResolveGitCommand("status", nil)
	if src.Committed() != cfg {
		t.Fatalf("expected configuration untouched")
	}
}

func TestParseDropPayload(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "  ", nil},
		{"single", "/home/me/project\n", []string{"/home/me/project"}},
		{"escaped space", `/home/me/my\ project /tmp/x`, []string{"/home/me/my project", "/tmp/x"}},
		{"quoted", `'/home/me/a b' "/tmp/c d"`, []string{"/home/me/a b", "/tmp/c d"}},
		{"unbalanced", "/tmp/it's\n/tmp/other", []string{"/tmp/it's", "/tmp/other"}},
		{"file uri", "file:///home/me/with%20space", []string{"/home/me/with space"}},
		{"windows", "\"C:\\Users\\me\\My Project\"\r\nC:\\Work", []string{`C:\Users\me\My Project`, `C:\Work`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDropPayload(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
