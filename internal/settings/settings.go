// Package settings owns the user-editable launcher configuration: the
// fixed-arity tool and git slots, their defaults, the best-effort merge of
// persisted state over those defaults, and the committed/draft editor used by
// the settings form.
package settings

import (
	"runtime"
	"strings"
)

// Key is the persistent slot holding the serialized Configuration.
const Key = "launcher_config"

const (
	SlotsPerTool   = 2
	GitSlots       = 3
	DefaultOpacity = 90
	MinOpacity     = 0
	MaxOpacity     = 100
)

// Tool identifies one of the launchable CLIs. The tool key doubles as the
// command identifier passed to the host.
type Tool string

const (
	ToolCodex  Tool = "codex"
	ToolClaude Tool = "claude"
	ToolGemini Tool = "gemini"
)

// Tools lists the launchable tools in launch-target order.
var Tools = [...]Tool{ToolCodex, ToolClaude, ToolGemini}

// ParseTool resolves a tool key, ignoring case and surrounding space.
func ParseTool(s string) (Tool, bool) {
	key := Tool(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range Tools {
		if t == key {
			return t, true
		}
	}
	return "", false
}

// Title is the capitalised tool key used in element ids and headings.
func (t Tool) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// ToolSlot binds a display name to a working directory for one tool.
type ToolSlot struct {
	Name string `json:"name" toml:"name"`
	Path string `json:"path" toml:"path"`
}

// GitRepoSlot is one selectable git working directory. An empty path marks
// the slot unset; the slot index stays its identity either way.
type GitRepoSlot struct {
	Name string `json:"name" toml:"name"`
	Path string `json:"path" toml:"path"`
}

// Unset reports whether the slot has no usable path.
func (s GitRepoSlot) Unset() bool {
	return strings.TrimSpace(s.Path) == ""
}

// Configuration is the whole persisted settings document.
type Configuration struct {
	Codex    [SlotsPerTool]ToolSlot `json:"codex" yaml:"codex" toml:"codex"`
	Claude   [SlotsPerTool]ToolSlot `json:"claude" yaml:"claude" toml:"claude"`
	Gemini   [SlotsPerTool]ToolSlot `json:"gemini" yaml:"gemini" toml:"gemini"`
	GitRepos [GitSlots]GitRepoSlot  `json:"gitRepos" yaml:"gitRepos" toml:"gitRepos"`
	Opacity  int                    `json:"opacity" yaml:"opacity" toml:"opacity"`
}

// Slots returns the two slots configured for tool.
func (c Configuration) Slots(tool Tool) ([SlotsPerTool]ToolSlot, bool) {
	switch tool {
	case ToolCodex:
		return c.Codex, true
	case ToolClaude:
		return c.Claude, true
	case ToolGemini:
		return c.Gemini, true
	}
	return [SlotsPerTool]ToolSlot{}, false
}

// SetSlots replaces the slots configured for tool.
func (c *Configuration) SetSlots(tool Tool, slots [SlotsPerTool]ToolSlot) bool {
	switch tool {
	case ToolCodex:
		c.Codex = slots
	case ToolClaude:
		c.Claude = slots
	case ToolGemini:
		c.Gemini = slots
	default:
		return false
	}
	return true
}

// Default returns the hard-coded configuration used on a fresh install.
func Default() Configuration {
	root, work := defaultRoots()
	toolDefaults := [SlotsPerTool]ToolSlot{
		{Name: "Default", Path: root},
		{Name: "Alternative", Path: work},
	}
	return Configuration{
		Codex:   toolDefaults,
		Claude:  toolDefaults,
		Gemini:  toolDefaults,
		Opacity: DefaultOpacity,
	}
}

func defaultRoots() (string, string) {
	if runtime.GOOS == "windows" {
		return `C:\`, `C:\Work`
	}
	return "/", "/work"
}

// ClampOpacity bounds v to [MinOpacity, MaxOpacity].
func ClampOpacity(v int) int {
	if v < MinOpacity {
		return MinOpacity
	}
	if v > MaxOpacity {
		return MaxOpacity
	}
	return v
}

// Normalize returns c with every scalar brought back inside its domain.
func Normalize(c Configuration) Configuration {
	c.Opacity = ClampOpacity(c.Opacity)
	return c
}
