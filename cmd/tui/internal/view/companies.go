package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/biztime/internal/company"
)

type companyState int

const (
	companyStateBrowse companyState = iota
	companyStateCreate
	companyStateEdit
	companyStateDelete
)

// companyFields holds form bindings. It lives on the heap so the form keeps
// writing to it while the model is copied between updates.
type companyFields struct {
	code        string
	name        string
	description string
	confirm     bool
}

type CompaniesModel struct {
	CommonModel
	svc *company.Service

	state     companyState
	table     table.Model
	companies []*company.Summary
	detail    *company.Company
	form      *huh.Form
	fields    *companyFields

	loading bool
	status  string
}

func NewCompaniesModel(svc *company.Service) CompaniesModel {
	return CompaniesModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "Code", Width: 24},
			{Title: "Name", Width: 40},
		}),
		loading: true,
	}
}

func (m CompaniesModel) Title() string { return "Companies" }

func (m CompaniesModel) ShortHelp() string {
	if m.state != companyStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: details | n: new | e: edit | d: delete | r: refresh"
}

func (m CompaniesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CompaniesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCompaniesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.companies = msg.companies
		m.refreshTable()

		return m, nil

	case companyDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.detail = msg.company

		if msg.edit {
			m.fields = &companyFields{
				code:        msg.company.Code,
				name:        msg.company.Name,
				description: msg.company.Description,
			}

			return m.openForm(companyStateEdit, m.nameForm())
		}

		return m, nil

	case companySavedMsg:
		m.state = companyStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
			m.detail = nil
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	if m.state == companyStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m CompaniesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			if c := m.selected(); c != nil {
				return m, m.detailCmd(c.Code, false)
			}
		case "n":
			m.fields = &companyFields{}
			return m.openForm(companyStateCreate, m.nameForm())
		case "e":
			c := m.selected()
			if c == nil {
				return m, nil
			}

			return m, m.detailCmd(c.Code, true)
		case "d":
			c := m.selected()
			if c == nil {
				return m, nil
			}

			m.fields = &companyFields{code: c.Code}

			return m.openForm(companyStateDelete, newForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s?", c.Name)).
					Description("Industry links are removed with it.").
					Value(&m.fields.confirm),
			)))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CompaniesModel) nameForm() *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("Name").
			Value(&m.fields.name).
			Validate(required("name")),
		huh.NewText().
			Key("description").
			Title("Description").
			Value(&m.fields.description),
	))
}

func (m CompaniesModel) openForm(state companyState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.table.Blur()

	return m, m.form.Init()
}

func (m CompaniesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd, done, cancelled := updateForm(m.form, msg)
	m.form = form

	switch {
	case cancelled:
		m.state = companyStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	case done:
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m CompaniesModel) View() string {
	if m.loading {
		return "Loading companies..."
	}

	header := fmt.Sprintf("Companies: %s", activeStyle(fmt.Sprint(len(m.companies))))

	var side string

	switch {
	case m.form != nil:
		titles := map[companyState]string{
			companyStateCreate: "New Company",
			companyStateEdit:   "Edit Company",
			companyStateDelete: "Delete Company",
		}
		side = panel(titles[m.state], m.form.View())
	case m.detail != nil:
		side = panel(m.detail.Name, companyDetail(m.detail))
	}

	return screen(header, m.status, m.table, side)
}

func companyDetail(c *company.Company) string {
	industries := "none"
	if len(c.Industries) > 0 {
		industries = strings.Join(c.Industries, ", ")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Code: %s\n", c.Code)
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	fmt.Fprintf(&b, "Industries: %s\n", industries)
	fmt.Fprintf(&b, "Invoices: %d\n", len(c.Invoices))

	for _, id := range c.Invoices {
		fmt.Fprintf(&b, "  %s\n", id)
	}

	return b.String()
}

func (m CompaniesModel) selected() *company.Summary {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.companies) {
		return nil
	}

	return m.companies[idx]
}

func (m *CompaniesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.companies))
	for _, c := range m.companies {
		rows = append(rows, table.Row{c.Code, c.Name})
	}

	m.table.SetRows(rows)
}

// Messages

type loadCompaniesMsg struct {
	companies []*company.Summary
	err       error
}

type companyDetailMsg struct {
	company *company.Company
	edit    bool
	err     error
}

type companySavedMsg struct {
	status string
	err    error
}

func (m CompaniesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		companies, err := m.svc.List(ctx)

		return loadCompaniesMsg{companies: companies, err: err}
	}
}

// detailCmd loads a company. With edit set the edit form opens once it arrives.
func (m CompaniesModel) detailCmd(code string, edit bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.svc.Get(ctx, code)

		return companyDetailMsg{company: c, edit: edit, err: err}
	}
}

func (m CompaniesModel) saveCmd() tea.Cmd {
	state := m.state
	f := *m.fields

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch state {
		case companyStateCreate:
			c, err := m.svc.Create(ctx, company.CreateParams{Name: f.name, Description: f.description})
			if err != nil {
				return companySavedMsg{err: err}
			}

			return companySavedMsg{status: "Created " + c.Code}
		case companyStateEdit:
			_, err := m.svc.Update(ctx, f.code, company.UpdateParams{Name: f.name, Description: f.description})
			return companySavedMsg{status: "Updated " + f.code, err: err}
		case companyStateDelete:
			if !f.confirm {
				return companySavedMsg{}
			}

			err := m.svc.Delete(ctx, f.code)

			return companySavedMsg{status: "Deleted " + f.code, err: err}
		}

		return companySavedMsg{}
	}
}
