package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/biztime/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/biztime/internal/company"
	companyStore "github.com/MrJamesThe3rd/biztime/internal/company/store"
	"github.com/MrJamesThe3rd/biztime/internal/config"
	"github.com/MrJamesThe3rd/biztime/internal/database"
	"github.com/MrJamesThe3rd/biztime/internal/industry"
	industryStore "github.com/MrJamesThe3rd/biztime/internal/industry/store"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/biztime/internal/invoice/store"
	"github.com/MrJamesThe3rd/biztime/internal/logging"
)

type services struct {
	companies  *company.Service
	industries *industry.Service
	invoices   *invoice.Service
}

type model struct {
	svc services

	// active is nil while the menu is shown.
	active view.View
	width  int
	height int
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs go to stderr and only warnings get through.
	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Format, max(cfg.LogLevel(), slog.LevelWarn)))

	db, err := database.New(context.Background(), cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		ConnLifetime: cfg.DB.ConnLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	return model{
		svc: services{
			companies:  company.NewService(companyStore.New(db), company.WithInvoiceCascade(cfg.Company.DeletePolicy == config.DeleteCascade)),
			industries: industry.NewService(industryStore.New(db)),
			invoices:   invoice.NewService(invoiceStore.New(db)),
		},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v view.View) (tea.Model, tea.Cmd) {
	m.active = v

	cmd := v.Init()
	if m.width > 0 {
		next, sizeCmd := v.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.active = next.(view.View)
		cmd = tea.Batch(cmd, sizeCmd)
	}

	return m, cmd
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.active == nil {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(view.NewCompaniesModel(m.svc.companies))
			case "2":
				return m.open(view.NewInvoicesModel(m.svc.invoices, m.svc.companies))
			case "3":
				return m.open(view.NewIndustriesModel(m.svc.industries, m.svc.companies))
			}
		}
	case view.BackMsg:
		m.active = nil
		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Biztime TUI\n\n" +
				"1. Companies\n" +
				"2. Invoices\n" +
				"3. Industries\n\n" +
				"q. Quit",
		)
	}

	title := lipgloss.NewStyle().Bold(true).Padding(1, 1, 0).Render(m.active.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.active.ShortHelp())

	return strings.Join([]string{title, m.active.View(), help}, "\n")
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
