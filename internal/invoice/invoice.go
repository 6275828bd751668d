package invoice

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// PageSize is the number of rows per page of the invoices table.
	PageSize = 6
	// LatestLimit is the number of invoices shown in the latest-invoices card.
	LatestLimit = 5
	// ListPath is the page that lists invoices; writes invalidate it and
	// successful create/update actions redirect to it.
	ListPath = "/dashboard/invoices"
	// OverviewPath is the dashboard overview; its cards and latest invoices
	// change with every write too.
	OverviewPath = "/dashboard"
)

// Status is the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice is a stored invoice. Date has day precision and, together with
// ID, never changes after creation.
type Invoice struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     int64 // Amount in cents
	Status     Status
	Date       time.Time
}

// LatestInvoice is an entry of the latest-invoices card.
type LatestInvoice struct {
	ID       uuid.UUID
	Name     string
	Email    string
	ImageURL string
	Amount   string // formatted, e.g. "$1,234.56"
}

// Row is an invoice joined with its customer for the invoices table.
type Row struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Name       string
	Email      string
	ImageURL   string
	Amount     int64
	Date       time.Time
	Status     Status
}

// StatusAmount is the projection used to compute the summary cards.
type StatusAmount struct {
	Status Status
	Amount int64
}

// CardData backs the dashboard summary cards.
type CardData struct {
	NumberOfInvoices     int
	NumberOfCustomers    int
	PaidCents            int64
	PendingCents         int64
	TotalPaidInvoices    string
	TotalPendingInvoices string
}

// Totals sums amounts per status in one pass. Rows with any status other
// than paid or pending count towards neither total.
func Totals(rows []StatusAmount) (paid, pending int64) {
	for _, r := range rows {
		switch r.Status {
		case StatusPaid:
			paid += r.Amount
		case StatusPending:
			pending += r.Amount
		}
	}

	return paid, pending
}

// Pages returns the number of pages needed to show count rows.
func Pages(count int) int {
	if count <= 0 {
		return 0
	}

	return (count + PageSize - 1) / PageSize
}

// Offset returns the first row index of page, treating pages below 1 as 1.
// Pages past the largest representable offset are clamped to it.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}

	if page > math.MaxInt/PageSize {
		page = math.MaxInt / PageSize
	}

	return (page - 1) * PageSize
}
