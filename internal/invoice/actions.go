package invoice

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/acme/ledgerboard/internal/revalidate"
)

// Outcome is the terminal state of a mutation action. A non-nil State means
// validation failed and nothing was written.
type Outcome struct {
	State      *FormState
	RedirectTo string
}

// Actions runs the create, update and delete flows: validate, persist,
// signal the list and overview pages as stale, then redirect.
type Actions struct {
	svc      *Service
	signaler revalidate.Signaler
	now      func() time.Time
}

func NewActions(svc *Service, signaler revalidate.Signaler, now func() time.Time) *Actions {
	return &Actions{svc: svc, signaler: signaler, now: now}
}

func (a *Actions) Create(ctx context.Context, values url.Values) (*Outcome, error) {
	v, errs := ParseForm(values)
	if errs != nil {
		return &Outcome{State: &FormState{
			Errors:  errs,
			Message: "Missing Fields. Failed to Create Invoice.",
		}}, nil
	}

	inv := &Invoice{
		CustomerID: v.CustomerID,
		Amount:     v.AmountCents,
		Status:     v.Status,
		Date:       a.today(),
	}
	if err := a.svc.Create(ctx, inv); err != nil {
		return nil, err
	}

	a.revalidate(ctx)

	return &Outcome{RedirectTo: ListPath}, nil
}

// Update replaces customer, amount and status of the invoice; its id and
// date are left untouched.
func (a *Actions) Update(ctx context.Context, id uuid.UUID, values url.Values) (*Outcome, error) {
	v, errs := ParseForm(values)
	if errs != nil {
		return &Outcome{State: &FormState{
			Errors:  errs,
			Message: "Missing Fields. Failed to Update Invoice.",
		}}, nil
	}

	inv := &Invoice{
		ID:         id,
		CustomerID: v.CustomerID,
		Amount:     v.AmountCents,
		Status:     v.Status,
	}
	if err := a.svc.Update(ctx, inv); err != nil {
		return nil, err
	}

	a.revalidate(ctx)

	return &Outcome{RedirectTo: ListPath}, nil
}

// Delete removes the invoice. Deleting an unknown id is not an error and
// still signals the affected pages.
func (a *Actions) Delete(ctx context.Context, id uuid.UUID) (*Outcome, error) {
	if err := a.svc.Delete(ctx, id); err != nil {
		return nil, err
	}

	a.revalidate(ctx)

	return &Outcome{}, nil
}

func (a *Actions) revalidate(ctx context.Context) {
	a.signaler.Revalidate(ctx, ListPath)
	a.signaler.Revalidate(ctx, OverviewPath)
}

func (a *Actions) today() time.Time {
	y, m, d := a.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
