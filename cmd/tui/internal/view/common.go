package view

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithWidth(45).WithShowHelp(false)
}

// updateForm feeds msg to form. done reports a completed form, cancelled an
// aborted one or an Esc keypress.
func updateForm(form *huh.Form, msg tea.Msg) (next *huh.Form, cmd tea.Cmd, done, cancelled bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return form, nil, false, true
	}

	model, cmd := form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		form = f
	}

	switch form.State {
	case huh.StateCompleted:
		return form, cmd, true, false
	case huh.StateAborted:
		return form, cmd, false, true
	}

	return form, cmd, false, false
}

func tableFrame(t table.Model) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(t.View())
}

func panel(title, body string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render(title + "\n\n" + body)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// screen lays out a header, the table and an optional side panel.
func screen(header, status string, t table.Model, side string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableFrame(t),
	)

	if side != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, side)
	}

	if status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
