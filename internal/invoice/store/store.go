package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/acme/ledgerboard/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanInvoice expects the columns of selectInvoiceColumns in order.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var status string

	if err := s.Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status, &inv.Date); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(status)

	return &inv, nil
}

const selectInvoiceColumns = `i.id, i.customer_id, i.amount, i.status, i.date`

// The customer join is a LEFT JOIN so invoices whose customer is gone still
// come back and fail enrichment instead of silently vanishing.
const filteredInvoicesFrom = `
	FROM invoices i
	LEFT JOIN customers c ON c.id = i.customer_id
	WHERE i.status ILIKE $1
		OR c.name ILIKE $1
		OR c.email ILIKE $1
		OR i.amount::text ILIKE $1
		OR i.date::text ILIKE $1
`

// likePattern turns a search term into a substring pattern, escaping the
// LIKE wildcards it contains.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}

func (s *Store) queryInvoices(ctx context.Context, query string, args ...any) ([]*invoice.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

func (s *Store) ListLatestInvoices(ctx context.Context, limit int) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		ORDER BY i.date DESC, i.id
		LIMIT $1`

	return s.queryInvoices(ctx, query, limit)
}

func (s *Store) ListFilteredInvoices(ctx context.Context, q string, limit, offset int) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + filteredInvoicesFrom + `
		ORDER BY i.date DESC, i.id
		LIMIT $2 OFFSET $3`

	return s.queryInvoices(ctx, query, likePattern(q), limit, offset)
}

func (s *Store) CountFilteredInvoices(ctx context.Context, q string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+filteredInvoicesFrom, likePattern(q)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting filtered invoices: %w", err)
	}

	return n, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) CountInvoices(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}

	return n, nil
}

func (s *Store) ListStatusAmounts(ctx context.Context) ([]invoice.StatusAmount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, amount FROM invoices`)
	if err != nil {
		return nil, fmt.Errorf("listing invoice amounts: %w", err)
	}
	defer rows.Close()

	var out []invoice.StatusAmount

	for rows.Next() {
		var (
			status string
			amount int64
		)

		if err := rows.Scan(&status, &amount); err != nil {
			return nil, fmt.Errorf("scanning invoice amount: %w", err)
		}

		out = append(out, invoice.StatusAmount{Status: invoice.Status(status), Amount: amount})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice amount rows: %w", err)
	}

	return out, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.Date,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`

	if _, err := s.db.ExecContext(ctx, query, inv.CustomerID, inv.Amount, inv.Status, inv.ID); err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}
