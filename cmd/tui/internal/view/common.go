package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

var (
	_ View = OverviewModel{}
	_ View = InvoicesModel{}
)

type CommonModel struct {
	Width  int
	Height int
}

// frame pads content and clips it to the terminal width once it is known.
func (c CommonModel) frame(content string) string {
	style := lipgloss.NewStyle().Padding(1)
	if c.Width > 0 {
		style = style.MaxWidth(c.Width)
	}

	return style.Render(content)
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func faint(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}
