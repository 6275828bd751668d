package revenue

import (
	"context"

	"github.com/acme/ledgerboard/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=revenue
type Repository interface {
	ListRevenue(ctx context.Context) ([]Revenue, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Fetch returns the monthly revenue series in calendar order.
func (s *Service) Fetch(ctx context.Context) ([]Revenue, error) {
	rows, err := s.repo.ListRevenue(ctx)
	if err != nil {
		return nil, apperr.Store(ctx, "fetch revenue", "Failed to fetch revenue data.", err)
	}

	SortByMonth(rows)

	return rows, nil
}
