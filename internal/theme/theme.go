package theme

import (
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title        *lipgloss.Style
	Tab          *lipgloss.Style
	ActiveTab    *lipgloss.Style
	Button       *lipgloss.Style
	HoverButton  *lipgloss.Style
	Radio        *lipgloss.Style
	ActiveRadio  *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Label        *lipgloss.Style
	Input        *lipgloss.Style
	FocusedInput *lipgloss.Style
	Muted        *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Footer       *lipgloss.Style
	FilterPrompt *lipgloss.Style
	Output       *lipgloss.Style
	Dirty        *lipgloss.Style
	DragOver     *lipgloss.Style
	Clean        *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 1),
	),
	HoverButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Padding(0, 1).Bold(true),
	),
	Radio: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ActiveRadio: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	FocusedInput: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Underline(true),
	),
	Muted: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Output: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	DragOver: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Dirty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Clean: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Background returns the frame style for the window tinted by t.
func Background(t settings.Tint) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(t.Hex()))
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
