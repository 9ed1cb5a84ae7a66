package ui

import (
	"testing"

	"github.com/atomicstack/cli-launcher/internal/layout"
	"github.com/atomicstack/cli-launcher/internal/testutil"
)

func TestPasteDropsOnTargetUnderPointer(t *testing.T) {
	env := newTestEnv(t, testConfig())
	withRegions(env.model(), launcherRegions())
	env.harness.Move(10, 6)
	if env.model().hoverIndex != 1 {
		t.Fatalf("expected claude target highlighted, got %d", env.model().hoverIndex)
	}
	env.harness.Paste("'/tmp/my project' /tmp/other")
	launches := env.host.Launches()
	if len(launches) != 1 || launches[0] != (testutil.LaunchCall{Command: "claude", Path: "/tmp/my project"}) {
		t.Fatalf("expected claude in first dropped path, got %#v", launches)
	}
	if env.model().hoverIndex != -1 {
		t.Fatalf("expected highlight cleared after drop, got %d", env.model().hoverIndex)
	}
}

func TestPasteOutsideTargetsMakesNoHostCall(t *testing.T) {
	env := newTestEnv(t, testConfig())
	withRegions(env.model(), launcherRegions())
	env.harness.Move(70, 20)
	if env.model().hoverIndex != -1 {
		t.Fatalf("expected no highlight, got %d", env.model().hoverIndex)
	}
	env.harness.Paste("/tmp/proj")
	if len(env.host.Launches()) != 0 {
		t.Fatalf("expected no launch, got %#v", env.host.Launches())
	}
	if env.model().errMsg != "" {
		t.Fatalf("expected silent ignore, got %q", env.model().errMsg)
	}
}

func TestPasteWithoutPointerUsesFocusedTarget(t *testing.T) {
	env := newTestEnv(t, testConfig())
	withRegions(env.model(), launcherRegions())
	env.harness.Key("down")
	env.harness.Key("down")
	env.harness.Paste("file:///tmp/drop%20here")
	launches := env.host.Launches()
	if len(launches) != 1 || launches[0] != (testutil.LaunchCall{Command: "gemini", Path: "/tmp/drop here"}) {
		t.Fatalf("expected gemini launch, got %#v", launches)
	}
}

func TestPasteIgnoredOnGitTab(t *testing.T) {
	env := newTestEnv(t, testConfig())
	withRegions(env.model(), launcherRegions())
	env.harness.Key("tab")
	env.harness.Move(10, 6)
	env.harness.Paste("/tmp/proj")
	if len(env.host.Launches()) != 0 {
		t.Fatalf("expected no launch from git tab, got %#v", env.host.Launches())
	}
}

func TestTargetsFollowRenderedRegions(t *testing.T) {
	env := newTestEnv(t, testConfig())
	regions := launcherRegions()
	withRegions(env.model(), regions)
	env.harness.Move(1, 1)
	targets := env.model().layout.Targets(layout.TabLauncher)
	if len(targets) != 3 || targets[2].Rect != regions[zoneTarget("gemini")] {
		t.Fatalf("expected three targets in tool order, got %#v", targets)
	}

	regions[zoneTarget("gemini")] = layout.Rect{X0: 0, Y0: 12, X1: 60, Y1: 13}
	env.harness.Move(5, 12)
	if env.model().hoverIndex != 2 {
		t.Fatalf("expected moved gemini target hit, got %d", env.model().hoverIndex)
	}
}
