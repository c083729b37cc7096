package theme

import (
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	HeaderTotal  *lipgloss.Style
	Footer       *lipgloss.Style
	FooterDetail *lipgloss.Style
	Directory    *lipgloss.Style
	Aggregate    *lipgloss.Style
	Selected     *lipgloss.Style
	Empty        *lipgloss.Style
	Palette      []*lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")).Bold(true),
	),
	HeaderTotal: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FooterDetail: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Directory: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	),
	Aggregate: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Selected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Bold(true),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Palette: []*lipgloss.Style{
		ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("114"))),
		ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("180"))),
		ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("174"))),
		ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("146"))),
		ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("152"))),
		ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("223"))),
	},
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// PaletteIndex picks a palette slot for name. The same name always maps to
// the same slot, so a file keeps its colour across frames and runs.
func (s *Styles) PaletteIndex(name string) int {
	if len(s.Palette) == 0 {
		return 0
	}
	return int(xxhash.Sum64String(name) % uint64(len(s.Palette)))
}

// File returns the palette style for a file name.
func (s *Styles) File(name string) *lipgloss.Style {
	if len(s.Palette) == 0 {
		return s.Footer
	}
	return s.Palette[s.PaletteIndex(name)]
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
