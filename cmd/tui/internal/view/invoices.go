package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

type invoiceState int

const (
	invoiceStateBrowse invoiceState = iota
	invoiceStateCreate
	invoiceStateAmount
	invoiceStateDelete
)

var paidFilterLabels = []string{"All", "Unpaid", "Paid"}

type invoiceFields struct {
	companyCode string
	amount      string
	confirm     bool
}

type InvoicesModel struct {
	CommonModel
	invoices  *invoice.Service
	companies *company.Service

	state    invoiceState
	table    table.Model
	rows     []*invoice.Invoice
	form     *huh.Form
	fields   *invoiceFields
	selected *invoice.Invoice

	filterIdx int
	filter    invoice.ListFilter
	loading   bool
	status    string
}

func NewInvoicesModel(invoices *invoice.Service, companies *company.Service) InvoicesModel {
	return InvoicesModel{
		invoices:  invoices,
		companies: companies,
		table: newTable([]table.Column{
			{Title: "ID", Width: 10},
			{Title: "Company", Width: 20},
			{Title: "Amount", Width: 12},
			{Title: "Paid", Width: 6},
			{Title: "Added", Width: 12},
			{Title: "Paid On", Width: 12},
		}),
		loading: true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	if m.state != invoiceStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | f: paid filter | p: toggle paid | e: amount | n: new | x: delete | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.rows = msg.invoices
		m.refreshTable()

		return m, nil

	case companyOptionsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		if len(msg.companies) == 0 {
			m.status = "Create a company first."
			return m, nil
		}

		m.fields = &invoiceFields{companyCode: msg.companies[0].Code}

		return m.openForm(invoiceStateCreate, newForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Company").
				Options(companyOptions(msg.companies)...).
				Value(&m.fields.companyCode),
			huh.NewInput().
				Title("Amount").
				Placeholder("100.00").
				Value(&m.fields.amount).
				Validate(validateAmount),
		)))

	case invoiceSavedMsg:
		m.state = invoiceStateBrowse
		m.form = nil
		m.selected = nil
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

	if m.state == invoiceStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(paidFilterLabels)
			m.applyFilter()

			return m, m.loadCmd()
		case "p":
			if inv := m.current(); inv != nil {
				return m, m.togglePaidCmd(inv)
			}
		case "n":
			return m, m.companyOptionsCmd()
		case "e":
			inv := m.current()
			if inv == nil {
				return m, nil
			}

			m.selected = inv
			m.fields = &invoiceFields{amount: inv.Amount.String()}

			return m.openForm(invoiceStateAmount, newForm(huh.NewGroup(
				huh.NewInput().
					Title("Amount").
					Value(&m.fields.amount).
					Validate(validateAmount),
			)))
		case "x":
			inv := m.current()
			if inv == nil {
				return m, nil
			}

			m.selected = inv
			m.fields = &invoiceFields{}

			return m.openForm(invoiceStateDelete, newForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete invoice of %s for %s?", FormatAmount(inv.Amount), inv.CompanyCode)).
					Value(&m.fields.confirm),
			)))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) openForm(state invoiceState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd, done, cancelled := updateForm(m.form, msg)
	m.form = form

	switch {
	case cancelled:
		m.state = invoiceStateBrowse
		m.form = nil
		m.selected = nil
		m.table.Focus()

		return m, nil
	case done:
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m InvoicesModel) View() string {
	if m.loading {
		return "Loading invoices..."
	}

	header := fmt.Sprintf("Filter: [f] Paid: %s", activeStyle(paidFilterLabels[m.filterIdx]))

	var side string

	if m.form != nil {
		titles := map[invoiceState]string{
			invoiceStateCreate: "New Invoice",
			invoiceStateAmount: "Correct Amount",
			invoiceStateDelete: "Delete Invoice",
		}
		side = panel(titles[m.state], m.form.View())
	}

	return screen(header, m.status, m.table, side)
}

func (m *InvoicesModel) applyFilter() {
	switch m.filterIdx {
	case 1:
		m.filter.Paid = new(false)
	case 2:
		m.filter.Paid = new(true)
	default:
		m.filter.Paid = nil
	}
}

func (m InvoicesModel) current() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, inv := range m.rows {
		paid := "no"
		if inv.Paid {
			paid = "yes"
		}

		rows = append(rows, table.Row{
			inv.ID.String()[:8],
			inv.CompanyCode,
			FormatAmount(inv.Amount),
			paid,
			FormatDate(inv.AddDate),
			FormatPaidDate(inv.PaidDate),
		})
	}

	m.table.SetRows(rows)
}

func companyOptions(companies []*company.Summary) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(companies))
	for _, c := range companies {
		opts = append(opts, huh.NewOption(c.Name, c.Code))
	}

	return opts
}

// Messages

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

type companyOptionsMsg struct {
	companies []*company.Summary
	err       error
}

type invoiceSavedMsg struct {
	status string
	err    error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invoices.List(ctx, filter)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

func (m InvoicesModel) companyOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		companies, err := m.companies.List(ctx)

		return companyOptionsMsg{companies: companies, err: err}
	}
}

// togglePaidCmd pays an unpaid invoice or reverts a paid one. The amount and
// payment date come from the stored row, not the table.
func (m InvoicesModel) togglePaidCmd(inv *invoice.Invoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.invoices.SetPaid(ctx, inv.ID, !inv.Paid)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}

		if updated.Paid {
			return invoiceSavedMsg{status: "Paid on " + FormatPaidDate(updated.PaidDate)}
		}

		return invoiceSavedMsg{status: "Marked unpaid"}
	}
}

func (m InvoicesModel) saveCmd() tea.Cmd {
	state := m.state
	f := *m.fields
	inv := m.selected

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch state {
		case invoiceStateCreate:
			amt, err := ParseAmount(f.amount)
			if err != nil {
				return invoiceSavedMsg{err: err}
			}

			created, err := m.invoices.Create(ctx, invoice.CreateParams{CompanyCode: f.companyCode, Amount: amt})
			if err != nil {
				return invoiceSavedMsg{err: err}
			}

			return invoiceSavedMsg{status: "Created invoice " + created.ID.String()}
		case invoiceStateAmount:
			amt, err := ParseAmount(f.amount)
			if err != nil {
				return invoiceSavedMsg{err: err}
			}

			_, err = m.invoices.UpdateAmount(ctx, inv.ID, amt)

			return invoiceSavedMsg{status: "Amount set to " + FormatAmount(amt), err: err}
		case invoiceStateDelete:
			if !f.confirm {
				return invoiceSavedMsg{}
			}

			err := m.invoices.Delete(ctx, inv.ID)

			return invoiceSavedMsg{status: "Deleted invoice", err: err}
		}

		return invoiceSavedMsg{}
	}
}
