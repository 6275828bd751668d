package invoice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acme/ledgerboard/internal/apperr"
	"github.com/acme/ledgerboard/internal/customer"
	"github.com/acme/ledgerboard/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	ListLatestInvoices(ctx context.Context, limit int) ([]*Invoice, error)
	// ListFilteredInvoices matches query case-insensitively against status,
	// customer name and email, amount and date.
	ListFilteredInvoices(ctx context.Context, query string, limit, offset int) ([]*Invoice, error)
	CountFilteredInvoices(ctx context.Context, query string) (int, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	CountInvoices(ctx context.Context) (int, error)
	ListStatusAmounts(ctx context.Context) ([]StatusAmount, error)

	CreateInvoice(ctx context.Context, inv *Invoice) error
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

// Customers is the customer read side needed for enrichment and card data.
type Customers interface {
	Count(ctx context.Context) (int, error)
	Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*customer.Customer, error)
}

type Service struct {
	repo      Repository
	customers Customers
}

func NewService(repo Repository, customers Customers) *Service {
	return &Service{repo: repo, customers: customers}
}

// FetchLatestInvoices returns the most recent invoices with their customer
// details and a formatted amount.
func (s *Service) FetchLatestInvoices(ctx context.Context) ([]LatestInvoice, error) {
	invoices, err := s.repo.ListLatestInvoices(ctx, LatestLimit)
	if err != nil {
		return nil, apperr.Store(ctx, "fetch latest invoices", "Failed to fetch the latest invoices.", err)
	}

	rows, err := s.enrich(ctx, invoices)
	if err != nil {
		return nil, err
	}

	latest := make([]LatestInvoice, len(rows))
	for i, r := range rows {
		latest[i] = LatestInvoice{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			ImageURL: r.ImageURL,
			Amount:   money.FormatCents(r.Amount),
		}
	}

	return latest, nil
}

// FetchCardData issues the three summary reads concurrently; if any of them
// fails the whole call fails.
func (s *Service) FetchCardData(ctx context.Context) (*CardData, error) {
	var (
		invoiceCount  int
		customerCount int
		amounts       []StatusAmount
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountInvoices(gctx)
		if err != nil {
			return apperr.Store(gctx, "count invoices", "Failed to fetch card data.", err)
		}

		invoiceCount = n

		return nil
	})

	g.Go(func() error {
		n, err := s.customers.Count(gctx)
		if err != nil {
			return err
		}

		customerCount = n

		return nil
	})

	g.Go(func() error {
		rows, err := s.repo.ListStatusAmounts(gctx)
		if err != nil {
			return apperr.Store(gctx, "list invoice amounts", "Failed to fetch card data.", err)
		}

		amounts = rows

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	paid, pending := Totals(amounts)

	return &CardData{
		NumberOfInvoices:     invoiceCount,
		NumberOfCustomers:    customerCount,
		PaidCents:            paid,
		PendingCents:         pending,
		TotalPaidInvoices:    money.FormatCents(paid),
		TotalPendingInvoices: money.FormatCents(pending),
	}, nil
}

// FetchFilteredInvoices returns one page of invoices matching query,
// newest first.
func (s *Service) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]Row, error) {
	invoices, err := s.repo.ListFilteredInvoices(ctx, strings.TrimSpace(query), PageSize, Offset(page))
	if err != nil {
		return nil, apperr.Store(ctx, "fetch filtered invoices", "Failed to fetch filtered invoices.", err)
	}

	return s.enrich(ctx, invoices)
}

// FetchInvoicesPages returns how many pages FetchFilteredInvoices can serve for query.
func (s *Service) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	n, err := s.repo.CountFilteredInvoices(ctx, strings.TrimSpace(query))
	if err != nil {
		return 0, apperr.Store(ctx, "count filtered invoices", "Failed to fetch total number of invoices.", err)
	}

	return Pages(n), nil
}

// FetchInvoiceByID returns nil, nil when no invoice has the given id.
func (s *Service) FetchInvoiceByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}

		return nil, apperr.Store(ctx, "fetch invoice", "Failed to fetch invoice.", err)
	}

	return inv, nil
}

func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return apperr.Store(ctx, "create invoice", "Database Error: Failed to Create Invoice.", err)
	}

	return nil
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return apperr.Store(ctx, "update invoice", "Database Error: Failed to Update Invoice.", err)
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		return apperr.Store(ctx, "delete invoice", "Database Error: Failed to Delete Invoice.", err)
	}

	return nil
}

// enrich attaches customer details to invoices, keeping their order. All
// customers are fetched in one lookup; a single missing customer fails the
// whole batch.
func (s *Service) enrich(ctx context.Context, invoices []*Invoice) ([]Row, error) {
	if len(invoices) == 0 {
		return []Row{}, nil
	}

	ids := make([]uuid.UUID, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.CustomerID
	}

	customers, err := s.customers.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(invoices))

	for i, inv := range invoices {
		c, ok := customers[inv.CustomerID]
		if !ok {
			err := &CustomerNotFoundError{CustomerID: inv.CustomerID}
			slog.ErrorContext(ctx, "invoice references missing customer", "invoice_id", inv.ID, "error", err)

			return nil, err
		}

		rows[i] = Row{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Name:       c.Name,
			Email:      c.Email,
			ImageURL:   c.ImageURL,
			Amount:     inv.Amount,
			Date:       inv.Date,
			Status:     inv.Status,
		}
	}

	return rows, nil
}
