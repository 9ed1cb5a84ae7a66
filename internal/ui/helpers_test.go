package ui

import (
	"testing"

	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/testutil"
	"github.com/charmbracelet/x/ansi"
)

type testEnv struct {
	harness *Harness
	host    *testutil.FakeHost
	slots   *testutil.MemoryStore
}

func (e testEnv) model() *Model { return e.harness.Model() }

func (e testEnv) view() string { return ansi.Strip(e.harness.View()) }

func testConfig() settings.Configuration {
	cfg := settings.Default()
	cfg.Codex[0] = settings.ToolSlot{Name: "Home", Path: "/home/dev"}
	cfg.Codex[1] = settings.ToolSlot{Name: "Work", Path: "/work"}
	cfg.Claude[0] = settings.ToolSlot{Name: "", Path: "/srv/claude"}
	cfg.GitRepos[1] = settings.GitRepoSlot{Name: "api", Path: "/src/api"}
	cfg.GitRepos[2] = settings.GitRepoSlot{Path: "/src/web"}
	return cfg
}

func newTestEnv(t *testing.T, cfg settings.Configuration, opts ...func(*Options)) testEnv {
	t.Helper()
	fake := &testutil.FakeHost{}
	mem := testutil.NewMemoryStore()
	store := settings.NewStore(mem)
	o := Options{
		Editor: settings.NewEditor(store, cfg),
		Store:  store,
		Host:   fake,
		Layout: layout.NewCoordinator(fake, layout.WithSpawn(func(f func()) { f() })),
		Width:  80,
		Height: 40,
	}
	for _, opt := range opts {
		opt(&o)
	}
	m := NewModel(o)
	t.Cleanup(m.Close)
	return testEnv{harness: NewHarness(m), host: fake, slots: mem}
}

// withRegions replaces zone lookups with fixed rectangles so hit testing
// does not depend on the asynchronous zone scanner.
func withRegions(m *Model, rects map[string]layout.Rect) {
	m.regions = func(id string) (layout.Rect, bool) {
		r, ok := rects[id]
		return r, ok
	}
}

func launcherRegions() map[string]layout.Rect {
	return map[string]layout.Rect{
		zoneTab(layout.TabLauncher):       {X0: 0, Y0: 0, X1: 9, Y1: 0},
		zoneTab(layout.TabGit):            {X0: 11, Y0: 0, X1: 15, Y1: 0},
		zoneTarget(settings.ToolCodex):    {X0: 0, Y0: 2, X1: 60, Y1: 3},
		zoneTarget(settings.ToolClaude):   {X0: 0, Y0: 5, X1: 60, Y1: 6},
		zoneTarget(settings.ToolGemini):   {X0: 0, Y0: 8, X1: 60, Y1: 9},
		zoneRadio(settings.ToolCodex, 1):  {X0: 20, Y0: 3, X1: 30, Y1: 3},
		zoneLaunch(settings.ToolClaude):   {X0: 45, Y0: 6, X1: 52, Y1: 6},
		zoneRadio(settings.ToolGemini, 0): {X0: 3, Y0: 9, X1: 14, Y1: 9},
		zoneSettings:                      {X0: 20, Y0: 0, X1: 30, Y1: 0},
	}
}
