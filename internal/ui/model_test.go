package ui

import (
	"errors"
	"testing"

	"github.com/atomicstack/cli-launcher/internal/backend"
	"github.com/atomicstack/cli-launcher/internal/binding"
	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func TestInitRequestsLauncherSize(t *testing.T) {
	env := newTestEnv(t, testConfig())
	resizes := env.host.Resizes()
	if len(resizes) != 1 {
		t.Fatalf("expected one resize on init, got %#v", resizes)
	}
	want := layout.DefaultSizes()[layout.TabLauncher]
	if resizes[0] != (testutil.ResizeCall{Width: want.Width, Height: want.Height}) {
		t.Fatalf("expected resize to %v, got %#v", want, resizes[0])
	}
}

func TestStartTabOverride(t *testing.T) {
	env := newTestEnv(t, testConfig(), func(o *Options) { o.StartTab = layout.TabGit })
	if got := env.model().layout.Active(); got != layout.TabGit {
		t.Fatalf("expected git tab active, got %s", got)
	}
	if idx, ok := env.model().selection.Repo(); !ok || idx != 1 {
		t.Fatalf("expected first listed repo selected, got %d %v", idx, ok)
	}
}

func TestStartupErrorSurvivesInit(t *testing.T) {
	env := newTestEnv(t, testConfig(), func(o *Options) {
		o.StartupErr = errors.New("settings unreadable")
	})
	if env.model().errMsg != "settings unreadable" {
		t.Fatalf("expected startup error shown, got %q", env.model().errMsg)
	}
}

func TestCommittedConfigRenderedOnStart(t *testing.T) {
	env := newTestEnv(t, testConfig())
	el := env.model().elements[binding.LabelID(settings.ToolCodex, 1)]
	if el.Text != "Work" || el.Title != "/work" {
		t.Fatalf("expected Work label with /work title, got %#v", el)
	}
	unnamed := env.model().elements[binding.LabelID(settings.ToolClaude, 0)]
	if unnamed.Text != "Path 1" {
		t.Fatalf("expected fallback label Path 1, got %q", unnamed.Text)
	}
	options := env.model().gitOptions()
	if len(options) != 2 || options[0].Label != "api" || options[1].Label != "web" {
		t.Fatalf("expected api and web options, got %#v", options)
	}
}

func TestFixedSizeIgnoresWindowSize(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.harness.Send(tea.WindowSizeMsg{Width: 120, Height: 50})
	if env.model().width != 80 || env.model().height != 40 {
		t.Fatalf("expected fixed 80x40, got %dx%d", env.model().width, env.model().height)
	}
}

func TestWindowSizeApplied(t *testing.T) {
	env := newTestEnv(t, testConfig(), func(o *Options) { o.Width, o.Height = 0, 0 })
	env.harness.Send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if env.model().width != 100 || env.model().height != 30 {
		t.Fatalf("expected 100x30, got %dx%d", env.model().width, env.model().height)
	}
}

func TestQuitKey(t *testing.T) {
	env := newTestEnv(t, testConfig())
	_, cmd := env.model().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestBackendEventUpdatesRepoStatus(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.harness.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindRepoStatus,
		Data: []backend.RepoResult{{Repo: backend.Repo{Index: 1, Path: "/src/api"}, Branch: "main", Dirty: true}},
	}})
	st, ok := env.model().repos.Lookup(1)
	if !ok || st.Branch != "main" || !st.Dirty {
		t.Fatalf("expected dirty main status, got %#v %v", st, ok)
	}
}

func TestBackendErrorRecorded(t *testing.T) {
	env := newTestEnv(t, testConfig())
	env.harness.Send(backendEventMsg{event: backend.Event{Kind: backend.KindRepoStatus, Err: errors.New("poll failed")}})
	if env.model().backendErr != "poll failed" {
		t.Fatalf("expected backend error, got %q", env.model().backendErr)
	}
	env.harness.Send(backendEventMsg{event: backend.Event{Kind: backend.KindRepoStatus, Data: []backend.RepoResult{}}})
	if env.model().backendErr != "" {
		t.Fatalf("expected backend error cleared, got %q", env.model().backendErr)
	}
}

func TestWatchedReposSkipsUnsetSlots(t *testing.T) {
	repos := WatchedRepos(testConfig())
	if len(repos) != 2 {
		t.Fatalf("expected two watched repos, got %#v", repos)
	}
	if repos[0] != (backend.Repo{Index: 1, Path: "/src/api"}) || repos[1] != (backend.Repo{Index: 2, Path: "/src/web"}) {
		t.Fatalf("unexpected watched repos %#v", repos)
	}
}
