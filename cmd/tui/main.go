package main

import (
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/acme/ledgerboard/cmd/tui/internal/view"
	"github.com/acme/ledgerboard/internal/config"
	"github.com/acme/ledgerboard/internal/customer"
	customerStore "github.com/acme/ledgerboard/internal/customer/store"
	"github.com/acme/ledgerboard/internal/database"
	"github.com/acme/ledgerboard/internal/invoice"
	invoiceStore "github.com/acme/ledgerboard/internal/invoice/store"
	"github.com/acme/ledgerboard/internal/revalidate"
	"github.com/acme/ledgerboard/internal/revenue"
	revenueStore "github.com/acme/ledgerboard/internal/revenue/store"
)

type model struct {
	appName string

	invoiceService  *invoice.Service
	customerService *customer.Service
	revenueService  *revenue.Service
	actions         *invoice.Actions

	currentView View

	overviewView view.OverviewModel
	invoicesView view.InvoicesModel
}

type View int

const (
	ViewMenu     View = 0
	ViewOverview View = 1
	ViewInvoices View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	customerSvc := customer.NewService(customerStore.New(db))
	invoiceSvc := invoice.NewService(invoiceStore.New(db), customerSvc)
	revenueSvc := revenue.NewService(revenueStore.New(db))
	actions := invoice.NewActions(invoiceSvc, revalidate.NewRegistry(), time.Now)

	return model{
		appName:         cfg.App.Name,
		invoiceService:  invoiceSvc,
		customerService: customerSvc,
		revenueService:  revenueSvc,
		actions:         actions,
		currentView:     ViewMenu,
		overviewView:    view.NewOverviewModel(invoiceSvc, revenueSvc),
		invoicesView:    view.NewInvoicesModel(invoiceSvc, customerSvc, actions),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOverview
				m.overviewView = view.NewOverviewModel(m.invoiceService, m.revenueService)

				return m, m.overviewView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invoiceService, m.customerService, m.actions)

				return m, m.invoicesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOverview:
		var newModel tea.Model
		newModel, cmd = m.overviewView.Update(msg)
		m.overviewView = newModel.(view.OverviewModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	}

	return m, cmd
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).PaddingLeft(1)

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Invoices\n\n" +
				"q. Quit",
		)
	case ViewOverview:
		return titleStyle.Render(m.overviewView.Title()) + "\n" + m.overviewView.View()
	case ViewInvoices:
		return titleStyle.Render(m.invoicesView.Title()) + "\n" + m.invoicesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
