package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acme/ledgerboard/internal/revenue"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListRevenue(ctx context.Context) ([]revenue.Revenue, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT month, revenue FROM revenue`)
	if err != nil {
		return nil, fmt.Errorf("listing revenue: %w", err)
	}
	defer rows.Close()

	var out []revenue.Revenue

	for rows.Next() {
		var r revenue.Revenue
		if err := rows.Scan(&r.Month, &r.Revenue); err != nil {
			return nil, fmt.Errorf("scanning revenue: %w", err)
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revenue rows: %w", err)
	}

	return out, nil
}
