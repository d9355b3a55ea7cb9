package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header1    lipgloss.Style
	Header2    lipgloss.Style
	Bold       lipgloss.Style
	Muted      lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	FilePath   lipgloss.Style
	LineNumber lipgloss.Style
}

// NewStyles builds the styles on a lipgloss renderer.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Header2:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Bold:       lr.NewStyle().Bold(true),
		Muted:      lr.NewStyle().Foreground(lipgloss.Color("245")),
		Success:    lr.NewStyle().Foreground(lipgloss.Color("42")),
		Error:      lr.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Warning:    lr.NewStyle().Foreground(lipgloss.Color("214")),
		Info:       lr.NewStyle().Foreground(lipgloss.Color("39")),
		FilePath:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		LineNumber: lr.NewStyle().Foreground(lipgloss.Color("242")),
	}
}
