package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/industry"
)

type industryState int

const (
	industryStateBrowse industryState = iota
	industryStateCreate
	industryStateAssociate
)

type industryFields struct {
	code         string
	label        string
	industryCode string
	companyCode  string
}

type IndustriesModel struct {
	CommonModel
	industries *industry.Service
	companies  *company.Service

	state  industryState
	table  table.Model
	rows   []*industry.Industry
	form   *huh.Form
	fields *industryFields

	loading bool
	status  string
}

func NewIndustriesModel(industries *industry.Service, companies *company.Service) IndustriesModel {
	return IndustriesModel{
		industries: industries,
		companies:  companies,
		table: newTable([]table.Column{
			{Title: "Code", Width: 12},
			{Title: "Industry", Width: 24},
			{Title: "Companies", Width: 40},
		}),
		loading: true,
	}
}

func (m IndustriesModel) Title() string { return "Industries" }

func (m IndustriesModel) ShortHelp() string {
	if m.state != industryStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | a: associate company | r: refresh"
}

func (m IndustriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m IndustriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadIndustriesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.rows = msg.industries
		m.refreshTable()

		return m, nil

	case associateOptionsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		if len(m.rows) == 0 || len(msg.companies) == 0 {
			m.status = "Associating needs at least one industry and one company."
			return m, nil
		}

		industryOpts := make([]huh.Option[string], 0, len(m.rows))
		for _, ind := range m.rows {
			industryOpts = append(industryOpts, huh.NewOption(ind.Industry, ind.Code))
		}

		m.fields = &industryFields{industryCode: m.rows[0].Code, companyCode: msg.companies[0].Code}
		if ind := m.current(); ind != nil {
			m.fields.industryCode = ind.Code
		}

		return m.openForm(industryStateAssociate, newForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Industry").
				Options(industryOpts...).
				Value(&m.fields.industryCode),
			huh.NewSelect[string]().
				Title("Company").
				Options(companyOptions(msg.companies)...).
				Value(&m.fields.companyCode),
		)))

	case industrySavedMsg:
		m.state = industryStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	if m.state == industryStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m IndustriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			m.fields = &industryFields{}

			return m.openForm(industryStateCreate, newForm(huh.NewGroup(
				huh.NewInput().
					Title("Code").
					Placeholder("tech").
					Value(&m.fields.code).
					Validate(required("code")),
				huh.NewInput().
					Title("Industry").
					Placeholder("Technology").
					Value(&m.fields.label).
					Validate(required("industry")),
			)))
		case "a":
			return m, m.associateOptionsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m IndustriesModel) openForm(state industryState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.table.Blur()

	return m, m.form.Init()
}

func (m IndustriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd, done, cancelled := updateForm(m.form, msg)
	m.form = form

	switch {
	case cancelled:
		m.state = industryStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	case done:
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m IndustriesModel) View() string {
	if m.loading {
		return "Loading industries..."
	}

	header := fmt.Sprintf("Industries: %s", activeStyle(fmt.Sprint(len(m.rows))))

	var side string

	switch {
	case m.form != nil && m.state == industryStateCreate:
		side = panel("New Industry", m.form.View())
	case m.form != nil:
		side = panel("Associate Company", m.form.View())
	}

	return screen(header, m.status, m.table, side)
}

func (m IndustriesModel) current() *industry.Industry {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m *IndustriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, ind := range m.rows {
		rows = append(rows, table.Row{ind.Code, ind.Industry, strings.Join(ind.Companies, ", ")})
	}

	m.table.SetRows(rows)
}

// Messages

type loadIndustriesMsg struct {
	industries []*industry.Industry
	err        error
}

type associateOptionsMsg struct {
	companies []*company.Summary
	err       error
}

type industrySavedMsg struct {
	status string
	err    error
}

func (m IndustriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		industries, err := m.industries.List(ctx)

		return loadIndustriesMsg{industries: industries, err: err}
	}
}

func (m IndustriesModel) associateOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		companies, err := m.companies.List(ctx)

		return associateOptionsMsg{companies: companies, err: err}
	}
}

func (m IndustriesModel) saveCmd() tea.Cmd {
	state := m.state
	f := *m.fields

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if state == industryStateCreate {
			ind, err := m.industries.Create(ctx, industry.CreateParams{Code: f.code, Industry: f.label})
			if err != nil {
				return industrySavedMsg{err: err}
			}

			return industrySavedMsg{status: "Created " + ind.Code}
		}

		link, err := m.industries.Associate(ctx, industry.Link{IndustryCode: f.industryCode, CompanyCode: f.companyCode})
		if err != nil {
			return industrySavedMsg{err: err}
		}

		return industrySavedMsg{status: fmt.Sprintf("Linked %s to %s", link.CompanyCode, link.IndustryCode)}
	}
}
