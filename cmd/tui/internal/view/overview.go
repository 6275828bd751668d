package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/acme/ledgerboard/internal/invoice"
	"github.com/acme/ledgerboard/internal/revenue"
)

const barWidth = 40

type OverviewModel struct {
	CommonModel
	invoiceService *invoice.Service
	revenueService *revenue.Service

	loading bool
	err     error

	revenue []revenue.Revenue
	cards   *invoice.CardData
	latest  []invoice.LatestInvoice
}

func NewOverviewModel(invoiceSvc *invoice.Service, revenueSvc *revenue.Service) OverviewModel {
	return OverviewModel{
		invoiceService: invoiceSvc,
		revenueService: revenueSvc,
		loading:        true,
	}
}

func (m OverviewModel) Title() string     { return "Dashboard" }
func (m OverviewModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m OverviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case overviewLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.revenue = msg.revenue
			m.cards = msg.cards
			m.latest = msg.latest
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

var cardStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63"))

func (m OverviewModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Collected\n"+activeStyle(m.cards.TotalPaidInvoices)),
		cardStyle.Render("Pending\n"+activeStyle(m.cards.TotalPendingInvoices)),
		cardStyle.Render(fmt.Sprintf("Total Invoices\n%s", activeStyle(fmt.Sprint(m.cards.NumberOfInvoices)))),
		cardStyle.Render(fmt.Sprintf("Total Customers\n%s", activeStyle(fmt.Sprint(m.cards.NumberOfCustomers)))),
	)

	return m.frame(lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(barWidth+20).Render(m.revenueView()),
			m.latestView(),
		),
		"",
		faint(m.ShortHelp()),
	))
}

func (m OverviewModel) revenueView() string {
	var b strings.Builder

	b.WriteString("Recent Revenue\n\n")

	if len(m.revenue) == 0 {
		b.WriteString(faint("No data available."))
		return b.String()
	}

	var top float64
	for _, r := range m.revenue {
		top = max(top, r.Revenue)
	}

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	for _, r := range m.revenue {
		n := 0
		if top > 0 {
			n = int(r.Revenue / top * barWidth)
		}

		fmt.Fprintf(&b, "%-4s %s %.0f\n", r.Month, bar.Render(strings.Repeat("█", n)), r.Revenue)
	}

	return b.String()
}

func (m OverviewModel) latestView() string {
	var b strings.Builder

	b.WriteString("Latest Invoices\n\n")

	for _, l := range m.latest {
		fmt.Fprintf(&b, "%-24s %12s\n%s\n", l.Name, l.Amount, faint(l.Email))
	}

	return b.String()
}

type overviewLoadedMsg struct {
	revenue []revenue.Revenue
	cards   *invoice.CardData
	latest  []invoice.LatestInvoice
	err     error
}

func (m OverviewModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var out overviewLoadedMsg

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() (err error) {
			out.revenue, err = m.revenueService.Fetch(gctx)
			return err
		})

		g.Go(func() (err error) {
			out.cards, err = m.invoiceService.FetchCardData(gctx)
			return err
		})

		g.Go(func() (err error) {
			out.latest, err = m.invoiceService.FetchLatestInvoices(gctx)
			return err
		})

		out.err = g.Wait()

		return out
	}
}
