package state

import "github.com/atomicstack/cli-launcher/internal/settings"

// Selection holds the ephemeral choices made at launch time: the radio index
// per tool and the selected git repo slot. It is never persisted.
type Selection interface {
	ToolIndex(settings.Tool) int
	SetToolIndex(settings.Tool, int) bool
	ResetTools()
	Repo() (int, bool)
	SetRepo(int) bool
	ClearRepo()
}

type selection struct {
	tools   map[settings.Tool]int
	repo    int
	hasRepo bool
}

func NewSelection() Selection {
	return &selection{tools: make(map[settings.Tool]int, len(settings.Tools))}
}

// ToolIndex returns the checked slot for tool, 0 when nothing was chosen.
// Tool names are matched the way ParseTool matches them.
func (s *selection) ToolIndex(tool settings.Tool) int {
	if parsed, ok := settings.ParseTool(string(tool)); ok {
		tool = parsed
	}
	return s.tools[tool]
}

func (s *selection) SetToolIndex(tool settings.Tool, index int) bool {
	parsed, ok := settings.ParseTool(string(tool))
	if !ok {
		return false
	}
	if index < 0 || index >= settings.SlotsPerTool {
		return false
	}
	s.tools[parsed] = index
	return true
}

// ResetTools puts every radio back to slot 0, as a fresh render does.
func (s *selection) ResetTools() {
	for k := range s.tools {
		delete(s.tools, k)
	}
}

func (s *selection) Repo() (int, bool) {
	return s.repo, s.hasRepo
}

func (s *selection) SetRepo(index int) bool {
	if index < 0 || index >= settings.GitSlots {
		return false
	}
	s.repo = index
	s.hasRepo = true
	return true
}

func (s *selection) ClearRepo() {
	s.repo = 0
	s.hasRepo = false
}
