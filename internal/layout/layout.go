// Package layout tracks which tab section is visible, the window size each
// tab needs, and the launch targets each tab currently shows.
package layout

import (
	"context"
	"strings"
	"sync"

	"github.com/atomicstack/cli-launcher/internal/logging/events"
)

type Tab string

const (
	TabLauncher Tab = "launcher"
	TabGit      Tab = "git"
)

// Tabs lists the tab sections in display order.
var Tabs = [...]Tab{TabLauncher, TabGit}

// ParseTab resolves a tab id, ignoring case.
func ParseTab(s string) (Tab, bool) {
	key := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, tab := range Tabs {
		if tab == key {
			return tab, true
		}
	}
	return "", false
}

// Size is a window size in terminal cells.
type Size struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

// DefaultSizes is the fixed per-tab size table.
func DefaultSizes() map[Tab]Size {
	return map[Tab]Size{
		TabLauncher: {Width: 56, Height: 22},
		TabGit:      {Width: 100, Height: 30},
	}
}

// Resizer is the host capability used to resize the window.
type Resizer interface {
	ResizeWindow(ctx context.Context, width, height int) error
}

// Point is a cell position, zero based.
type Point struct {
	X int
	Y int
}

// Rect is a cell region with inclusive start and end coordinates.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

func (r Rect) Area() int {
	if r.X1 < r.X0 || r.Y1 < r.Y0 {
		return 0
	}
	return (r.X1 - r.X0 + 1) * (r.Y1 - r.Y0 + 1)
}

// Target is one launch target as currently rendered: its position in the
// tab's target list and the region it occupies.
type Target struct {
	Tab   Tab
	Index int
	Rect  Rect
}

// Coordinator owns the active tab and the layout-owned launch-target table.
// It is driven from the UI event loop; only the resize call leaves it.
type Coordinator struct {
	resizer Resizer
	sizes   map[Tab]Size
	spawn   func(func())

	mu      sync.Mutex
	active  Tab
	targets map[Tab][]Rect
}

type Option func(*Coordinator)

// WithSizes overrides entries of the default size table. Zero sizes are
// ignored.
func WithSizes(sizes map[Tab]Size) Option {
	return func(c *Coordinator) {
		for tab, size := range sizes {
			if _, ok := c.sizes[tab]; !ok {
				continue
			}
			if size.Width > 0 && size.Height > 0 {
				c.sizes[tab] = size
			}
		}
	}
}

// WithSpawn replaces the goroutine launcher used for resize requests.
func WithSpawn(spawn func(func())) Option {
	return func(c *Coordinator) {
		if spawn != nil {
			c.spawn = spawn
		}
	}
}

// NewCoordinator starts with the launcher tab active. resizer may be nil.
func NewCoordinator(resizer Resizer, opts ...Option) *Coordinator {
	c := &Coordinator{
		resizer: resizer,
		sizes:   DefaultSizes(),
		spawn:   func(f func()) { go f() },
		active:  TabLauncher,
		targets: make(map[Tab][]Rect),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate makes tab the only visible tab and requests the matching window
// size. The resize is fire-and-forget: failures are logged and never block
// the switch. Unknown tabs leave the active tab unchanged.
func (c *Coordinator) Activate(ctx context.Context, tab Tab) (Size, bool) {
	size, ok := c.sizes[tab]
	if !ok {
		events.Tab.Unknown(string(tab))
		return Size{}, false
	}
	c.mu.Lock()
	c.active = tab
	c.mu.Unlock()
	events.Tab.Activate(string(tab), size.Width, size.Height)

	if c.resizer != nil {
		resizer := c.resizer
		c.spawn(func() {
			if err := resizer.ResizeWindow(ctx, size.Width, size.Height); err != nil {
				events.Tab.ResizeFailed(string(tab), err)
			}
		})
	}
	return size, true
}

func (c *Coordinator) Active() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Coordinator) Visible(tab Tab) bool {
	return c.Active() == tab
}

func (c *Coordinator) Size(tab Tab) Size {
	return c.sizes[tab]
}

// SetTargets replaces the launch-target list of tab with rects, in target
// order.
func (c *Coordinator) SetTargets(tab Tab, rects []Rect) {
	dup := make([]Rect, len(rects))
	copy(dup, rects)
	c.mu.Lock()
	c.targets[tab] = dup
	c.mu.Unlock()
	events.Tab.Targets(string(tab), len(dup))
}

// Targets returns the launch targets registered for tab.
func (c *Coordinator) Targets(tab Tab) []Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	rects := c.targets[tab]
	out := make([]Target, 0, len(rects))
	for i, r := range rects {
		out = append(out, Target{Tab: tab, Index: i, Rect: r})
	}
	return out
}

// TargetAt hit-tests p against the active tab's targets. When regions nest,
// the smallest one containing p wins.
func (c *Coordinator) TargetAt(p Point) (Target, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var (
		best  Target
		found bool
	)
	for i, r := range c.targets[c.active] {
		if r.Area() == 0 || !r.Contains(p) {
			continue
		}
		if !found || r.Area() < best.Rect.Area() {
			best = Target{Tab: c.active, Index: i, Rect: r}
			found = true
		}
	}
	return best, found
}
