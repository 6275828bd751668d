package view

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/acme/ledgerboard/internal/customer"
	"github.com/acme/ledgerboard/internal/invoice"
	"github.com/acme/ledgerboard/internal/money"
	"github.com/acme/ledgerboard/internal/searchparams"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateSearch
	invoicesStateForm
	invoicesStateDelete
)

type InvoicesModel struct {
	CommonModel
	invoiceService  *invoice.Service
	customerService *customer.Service
	actions         *invoice.Actions

	state  invoicesState
	table  table.Model
	search textinput.Model
	form   *huh.Form

	rows       []invoice.Row
	customers  []*customer.Customer
	query      string
	page       int
	totalPages int

	loading bool
	err     error
	status  string

	editingID uuid.UUID
	bind      *formBindings
}

// formBindings outlives the model copies bubbletea makes, so huh fields
// can write into it.
type formBindings struct {
	customer  string
	amount    string
	status    string
	confirmed bool
}

func NewInvoicesModel(invoiceSvc *invoice.Service, customerSvc *customer.Service, actions *invoice.Actions) InvoicesModel {
	columns := []table.Column{
		{Title: "Customer", Width: 22},
		{Title: "Email", Width: 28},
		{Title: "Amount", Width: 12},
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(invoice.PageSize+1),
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

	ti := textinput.New()
	ti.Placeholder = "Search invoices..."
	ti.Width = 40

	return InvoicesModel{
		invoiceService:  invoiceSvc,
		customerService: customerSvc,
		actions:         actions,
		table:           t,
		search:          ti,
		page:            1,
		loading:         true,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	switch m.state {
	case invoicesStateSearch:
		return "Enter: search | Esc: cancel"
	case invoicesStateForm, invoicesStateDelete:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | /: search | ←/→: page | c: create | e: edit | d: delete | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadCustomersCmd())
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case invoicesLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.rows = msg.rows
			m.totalPages = msg.totalPages
			m.refreshTable()
		}

		return m, nil

	case customersLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading customers: %v", msg.err)
			return m, nil
		}

		m.customers = msg.customers

		return m, nil

	case invoiceActionMsg:
		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("Error: %v", msg.err)
		case msg.state != nil:
			m.status = formStateText(msg.state)
			return m, nil
		default:
			m.status = msg.done
		}

		return m, m.loadCmd()
	}

	switch m.state {
	case invoicesStateSearch:
		return m.updateSearch(msg)
	case invoicesStateForm, invoicesStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = invoicesStateSearch
			m.table.Blur()
			m.search.SetValue(m.query)

			return m, m.search.Focus()
		case "right", "n":
			if m.page < m.totalPages {
				m.page++
				return m, m.loadCmd()
			}

			return m, nil
		case "left", "p":
			if m.page > 1 {
				m.page--
				return m, m.loadCmd()
			}

			return m, nil
		case "c":
			return m.enterForm(nil)
		case "e":
			if row, ok := m.selected(); ok {
				return m.enterForm(&row)
			}

			return m, nil
		case "d":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = invoicesStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.state = invoicesStateBrowse
			m.search.Blur()
			m.table.Focus()

			// A new search always starts from the first page.
			m.query = strings.TrimSpace(m.search.Value())
			m.page = 1
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m InvoicesModel) selected() (invoice.Row, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return invoice.Row{}, false
	}

	return m.rows[idx], true
}

func (m InvoicesModel) enterForm(row *invoice.Row) (tea.Model, tea.Cmd) {
	if len(m.customers) == 0 {
		m.status = "No customers to invoice."
		return m, nil
	}

	m.editingID = uuid.Nil
	m.bind = &formBindings{status: string(invoice.StatusPending)}

	if row != nil {
		m.editingID = row.ID
		m.bind.customer = row.CustomerID.String()
		m.bind.amount = money.FromCents(row.Amount).StringFixed(2)
		m.bind.status = string(row.Status)
	}

	options := make([]huh.Option[string], len(m.customers))
	for i, c := range m.customers {
		options[i] = huh.NewOption(c.Name, c.ID.String())
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(invoice.FieldCustomerID).
				Title("Customer").
				Options(options...).
				Value(&m.bind.customer),

			huh.NewInput().
				Key(invoice.FieldAmount).
				Title("Amount (USD)").
				Placeholder("0.00").
				Value(&m.bind.amount),

			huh.NewSelect[string]().
				Key(invoice.FieldStatus).
				Title("Status").
				Options(
					huh.NewOption("Pending", string(invoice.StatusPending)),
					huh.NewOption("Paid", string(invoice.StatusPaid)),
				).
				Value(&m.bind.status),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) enterDelete() (tea.Model, tea.Cmd) {
	row, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.editingID = row.ID
	m.bind = &formBindings{}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s invoice for %s?", money.FormatCents(row.Amount), row.Name)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.bind.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == invoicesStateDelete {
		if !m.bind.confirmed {
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd(m.editingID)
	}

	return m, m.saveCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	header := fmt.Sprintf("%s  Page %s of %d", m.location(), activeStyle(strconv.Itoa(m.page)), m.totalPages)

	if m.state == invoicesStateSearch {
		header = m.search.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if (m.state == invoicesStateForm || m.state == invoicesStateDelete) && m.form != nil {
		title := "Create Invoice"
		if m.state == invoicesStateDelete {
			title = "Delete Invoice"
		} else if m.editingID != uuid.Nil {
			title = "Edit Invoice"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return m.frame(content + "\n" + faint(m.ShortHelp()))
}

// location renders the current search as the equivalent dashboard URL.
func (m InvoicesModel) location() string {
	q := searchparams.Set(url.Values{}, searchparams.Params{
		"query": {m.query},
		"page":  {strconv.Itoa(m.page)},
	})

	return invoice.ListPath + "?" + q
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, table.Row{
			r.Name,
			r.Email,
			money.FormatCents(r.Amount),
			FormatDate(r.Date),
			string(r.Status),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// formStateText flattens validation errors into one status line.
func formStateText(state *invoice.FormState) string {
	fields := make([]string, 0, len(state.Errors))
	for f := range state.Errors {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	parts := []string{state.Message}
	for _, f := range fields {
		parts = append(parts, strings.Join(state.Errors[f], " "))
	}

	return strings.Join(parts, " ")
}

// Messages

type invoicesLoadedMsg struct {
	rows       []invoice.Row
	totalPages int
	err        error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	query, page := m.query, m.page

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rows, err := m.invoiceService.FetchFilteredInvoices(ctx, query, page)
		if err != nil {
			return invoicesLoadedMsg{err: err}
		}

		pages, err := m.invoiceService.FetchInvoicesPages(ctx, query)

		return invoicesLoadedMsg{rows: rows, totalPages: pages, err: err}
	}
}

type customersLoadedMsg struct {
	customers []*customer.Customer
	err       error
}

func (m InvoicesModel) loadCustomersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.customerService.List(ctx)

		return customersLoadedMsg{customers: customers, err: err}
	}
}

type invoiceActionMsg struct {
	state *invoice.FormState
	done  string
	err   error
}

func (m InvoicesModel) saveCmd() tea.Cmd {
	id := m.editingID
	values := url.Values{
		invoice.FieldCustomerID: {m.bind.customer},
		invoice.FieldAmount:     {m.bind.amount},
		invoice.FieldStatus:     {m.bind.status},
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			out  *invoice.Outcome
			err  error
			done = "Invoice created."
		)

		if id == uuid.Nil {
			out, err = m.actions.Create(ctx, values)
		} else {
			out, err = m.actions.Update(ctx, id, values)
			done = "Invoice updated."
		}

		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{state: out.State, done: done}
	}
}

func (m InvoicesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.actions.Delete(ctx, id); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{done: "Invoice deleted."}
	}
}
