package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/acme/ledgerboard/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	CountCustomers(ctx context.Context) (int, error)
	GetCustomersByIDs(ctx context.Context, ids []uuid.UUID) ([]*Customer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every customer ordered by name.
func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, apperr.Store(ctx, "list customers", "Failed to fetch all customers.", err)
	}

	return customers, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return 0, apperr.Store(ctx, "count customers", "Failed to fetch card data.", err)
	}

	return n, nil
}

// Lookup fetches the given customers in one round trip, keyed by id.
// Ids without a matching row are simply absent from the map.
func (s *Service) Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Customer, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*Customer{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	distinct := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	customers, err := s.repo.GetCustomersByIDs(ctx, distinct)
	if err != nil {
		return nil, apperr.Store(ctx, "lookup customers", "Failed to fetch customers.", err)
	}

	byID := make(map[uuid.UUID]*Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	return byID, nil
}
