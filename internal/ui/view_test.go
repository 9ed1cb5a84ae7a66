package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/cli-launcher/internal/backend"
	"github.com/atomicstack/cli-launcher/internal/settings"
)

func TestLauncherViewShowsSlots(t *testing.T) {
	env := newTestEnv(t, testConfig())
	view := env.view()
	for _, want := range []string{"Launcher", "Git", "Codex", "Claude", "Gemini", "(•) Home", "( ) Work", "/home/dev", "Path 1", "launch"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if !strings.Contains(view, focusMarker+"Codex") {
		t.Fatalf("expected focus marker on codex, got:\n%s", view)
	}
}

func TestLauncherViewFollowsSelection(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.harness.Key("space")
	view := env.view()
	if !strings.Contains(view, "( ) Home") || !strings.Contains(view, "(•) Work") {
		t.Fatalf("expected Work checked, got:\n%s", view)
	}
	if !strings.Contains(view, "/work") {
		t.Fatalf("expected checked path shown, got:\n%s", view)
	}
}

func TestStatusLineShowsErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Codex[0].Path = ""
	env := newTestEnv(t, cfg)
	env.harness.Key("enter")
	if view := env.view(); !strings.Contains(view, "Path is empty!") {
		t.Fatalf("expected empty path message, got:\n%s", view)
	}
}

func TestGitViewListsReposAndStatus(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.harness.Key("tab")
	env.harness.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindRepoStatus,
		Data: []backend.RepoResult{
			{Repo: backend.Repo{Index: 1, Path: "/src/api"}, Branch: "main", Dirty: true},
			{Repo: backend.Repo{Index: 2, Path: "/src/web"}, Branch: "dev"},
		},
	}})
	view := env.view()
	for _, want := range []string{"api", "web", "/src/api", "main", "dirty", "dev", "clean", "status", "log (last 20)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected git view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestGitViewWithoutRepos(t *testing.T) {
	env := newTestEnv(t, settings.Default())
	env.harness.Key("tab")
	view := env.view()
	if !strings.Contains(view, "No repository configured") || !strings.Contains(view, "No repository selected.") {
		t.Fatalf("expected empty repo hints, got:\n%s", view)
	}
}

func TestGitViewShowsOutput(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.host.GitOutput = "On branch main\n"
	env.harness.Key("tab")
	env.harness.Key("enter")
	view := env.view()
	if !strings.Contains(view, "── git status ──") || !strings.Contains(view, "On branch main") {
		t.Fatalf("expected output pane, got:\n%s", view)
	}
}

func TestGitViewFilterNoMatches(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.harness.Key("tab")
	env.harness.Key("/")
	env.harness.Type("zzzz")
	if view := env.view(); !strings.Contains(view, `No matches for "zzzz"`) {
		t.Fatalf("expected no-match hint, got:\n%s", view)
	}
}

func TestSettingsViewShowsFieldsAndOpacity(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.harness.Key("s")
	env.harness.Key("shift+tab")
	env.harness.Key("left")
	view := env.view()
	for _, want := range []string{"Settings", "Codex 1 name", "Home", "Repo 3 path", "/src/web", "Opacity", "89%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected settings view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestFooterFollowsMode(t *testing.T) {
	env := newTestEnv(t, testConfig(), func(o *Options) { o.ShowFooter = true })
	if view := env.view(); !strings.Contains(view, "switch path") {
		t.Fatalf("expected launcher help, got:\n%s", view)
	}
	env.harness.Key("s")
	if view := env.view(); !strings.Contains(view, "ctrl+s save") {
		t.Fatalf("expected settings help, got:\n%s", view)
	}
}

func TestViewRespectsWidth(t *testing.T) {
	cfg := testConfig()
	cfg.Codex[0].Path = "/" + strings.Repeat("very-long-segment/", 10)
	env := newTestEnv(t, cfg)
	for _, line := range strings.Split(env.view(), "\n") {
		if w := len([]rune(line)); w > 80 {
			t.Fatalf("expected lines within 80 cells, got %d: %q", w, line)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("expected abcd…, got %q", got)
	}
	if got := truncateText("abc", 5); got != "abc" {
		t.Fatalf("expected abc unchanged, got %q", got)
	}
	if got := truncateText("abc", 0); got != "abc" {
		t.Fatalf("expected no truncation at width 0, got %q", got)
	}
}

func TestLimitHeight(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	got := limitHeight(lines, 3, 10)
	if len(got) != 3 || got[2] != "…" {
		t.Fatalf("expected two lines and an ellipsis, got %#v", got)
	}
	if got := limitHeight(lines, 0, 10); len(got) != 4 {
		t.Fatalf("expected unlimited height to keep lines, got %#v", got)
	}
}
