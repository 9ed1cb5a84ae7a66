// Package state holds the view state of the git command palette: the
// command list, the fuzzy filter over it, the cursor and the viewport.
package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Command is one entry of the palette: a git subcommand and its arguments.
type Command struct {
	ID    string
	Label string
	Args  []string
}

// Argv returns the full git argument list.
func (c Command) Argv() []string {
	return append([]string(nil), c.Args...)
}

// DefaultGitCommands is the built-in palette.
func DefaultGitCommands() []Command {
	return []Command{
		{ID: "status", Label: "status", Args: []string{"status"}},
		{ID: "log", Label: "log (last 20)", Args: []string{"log", "--oneline", "--decorate", "-20"}},
		{ID: "diff", Label: "diff --stat", Args: []string{"diff", "--stat"}},
		{ID: "branch", Label: "branches", Args: []string{"branch", "-a", "-vv"}},
		{ID: "fetch", Label: "fetch --all --prune", Args: []string{"fetch", "--all", "--prune"}},
		{ID: "pull", Label: "pull --ff-only", Args: []string{"pull", "--ff-only"}},
		{ID: "stash", Label: "stash list", Args: []string{"stash", "list"}},
		{ID: "remote", Label: "remotes", Args: []string{"remote", "-v"}},
	}
}

// Palette is a filterable command list.
type Palette struct {
	Title          string
	Full           []Command
	Items          []Command
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

func NewPalette(title string, commands []Command) *Palette {
	p := &Palette{Title: title, LastCursor: -1}
	p.Full = cloneCommands(commands)
	p.applyFilter()
	return p
}

// Current returns the command under the cursor.
func (p *Palette) Current() (Command, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return Command{}, false
	}
	return p.Items[p.Cursor], true
}

// SetFilter narrows the list to commands matching query. Clearing the
// filter restores the cursor to where it was before filtering began.
func (p *Palette) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(p.Filter)
	restore := -1
	p.Filter = query
	if trimmed != "" {
		if prevTrimmed == "" {
			p.LastCursor = p.Cursor
		}
		p.Cursor = 0
	} else if prevTrimmed != "" {
		restore = p.LastCursor
	}
	p.applyFilter()
	if trimmed != "" && len(p.Items) > 0 {
		if idx := BestMatchIndex(p.Items, trimmed); idx >= 0 {
			p.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(p.Items) {
			p.Cursor = restore
		} else {
			p.Cursor = 0
		}
		p.LastCursor = -1
	}
}

func (p *Palette) applyFilter() {
	p.Items = FilterCommands(p.Full, p.Filter)
	if len(p.Items) == 0 {
		p.Cursor = 0
		p.ViewportOffset = 0
		return
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor >= len(p.Items) {
		p.Cursor = len(p.Items) - 1
	}
	if p.ViewportOffset > len(p.Items)-1 {
		p.ViewportOffset = 0
	}
}

// MoveCursor moves the cursor by delta, clamped to the list.
func (p *Palette) MoveCursor(delta int) bool {
	if len(p.Items) == 0 {
		p.Cursor = 0
		return false
	}
	old := p.Cursor
	p.Cursor += delta
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor >= len(p.Items) {
		p.Cursor = len(p.Items) - 1
	}
	return p.Cursor != old
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (p *Palette) EnsureCursorVisible(maxVisible int) {
	if len(p.Items) == 0 || maxVisible <= 0 {
		p.ViewportOffset = 0
		return
	}
	maxOffset := len(p.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.Cursor < p.ViewportOffset {
		p.ViewportOffset = p.Cursor
	}
	if p.Cursor > p.ViewportOffset+maxVisible-1 {
		p.ViewportOffset = p.Cursor - maxVisible + 1
	}
	if p.ViewportOffset > maxOffset {
		p.ViewportOffset = maxOffset
	}
	if p.ViewportOffset < 0 {
		p.ViewportOffset = 0
	}
}

// Visible returns the window of items to draw and the offset of the first.
func (p *Palette) Visible(maxVisible int) ([]Command, int) {
	p.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || maxVisible >= len(p.Items) {
		return p.Items, 0
	}
	end := p.ViewportOffset + maxVisible
	if end > len(p.Items) {
		end = len(p.Items)
	}
	return p.Items[p.ViewportOffset:end], p.ViewportOffset
}

// FilterCommands returns commands matching query, fuzzy first, then by
// substring of label or id.
func FilterCommands(commands []Command, query string) []Command {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneCommands(commands)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels(commands))
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Command, 0, len(matches))
		for idx, cmd := range commands {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, cmd)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Command, 0, len(commands))
	for _, cmd := range commands {
		if strings.Contains(strings.ToLower(cmd.Label), lower) || strings.Contains(strings.ToLower(cmd.ID), lower) {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}

// BestMatchIndex prefers an exact id or label, then a label prefix, then
// the closest fuzzy match.
func BestMatchIndex(commands []Command, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(commands) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, cmd := range commands {
		if strings.EqualFold(cmd.Label, trimmed) || strings.EqualFold(cmd.ID, trimmed) {
			return i
		}
	}
	for i, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels(commands))
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}

func labels(commands []Command) []string {
	out := make([]string, len(commands))
	for i, cmd := range commands {
		out[i] = cmd.Label
	}
	return out
}

func cloneCommands(commands []Command) []Command {
	dup := make([]Command, len(commands))
	copy(dup, commands)
	return dup
}
