package invoice_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/acme/ledgerboard/internal/invoice"
)

type recordingSignaler struct {
	mu    sync.Mutex
	paths []string
}

func (s *recordingSignaler) Revalidate(_ context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paths = append(s.paths, path)
}

func newActions(t *testing.T, now time.Time) (*invoice.Actions, *invoice.MockRepository, *recordingSignaler) {
	t.Helper()

	svc, repo, _ := newService(t)
	sig := &recordingSignaler{}

	return invoice.NewActions(svc, sig, func() time.Time { return now }), repo, sig
}

func formValues(customerID, amount, status string) url.Values {
	return url.Values{
		invoice.FieldCustomerID: {customerID},
		invoice.FieldAmount:     {amount},
		invoice.FieldStatus:     {status},
	}
}

func TestActions_Create(t *testing.T) {
	customerID := uuid.New()

	t.Run("PersistsCentsAndToday", func(t *testing.T) {
		// Late evening in New York is already the next day in UTC.
		ny := time.FixedZone("EST", -5*60*60)
		now := time.Date(2024, 3, 5, 22, 10, 0, 0, ny)

		actions, repo, sig := newActions(t, now)

		var stored *invoice.Invoice

		repo.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
				stored = inv
				return nil
			})

		out, err := actions.Create(context.Background(), formValues(customerID.String(), "49.99", "pending"))
		require.NoError(t, err)

		assert.Nil(t, out.State)
		assert.Equal(t, invoice.ListPath, out.RedirectTo)
		assert.Equal(t, []string{invoice.ListPath, invoice.OverviewPath}, sig.paths)

		require.NotNil(t, stored)
		assert.Equal(t, customerID, stored.CustomerID)
		assert.Equal(t, int64(4999), stored.Amount)
		assert.Equal(t, invoice.StatusPending, stored.Status)
		assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), stored.Date)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		actions, _, sig := newActions(t, time.Now())

		out, err := actions.Create(context.Background(), url.Values{})
		require.NoError(t, err)

		require.NotNil(t, out.State)
		assert.Equal(t, "Missing Fields. Failed to Create Invoice.", out.State.Message)
		assert.Len(t, out.State.Errors, 3)
		assert.Empty(t, out.RedirectTo)
		assert.Empty(t, sig.paths)
	})

	t.Run("StoreError", func(t *testing.T) {
		actions, repo, sig := newActions(t, time.Now())

		repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(errors.New("unique violation"))

		out, err := actions.Create(context.Background(), formValues(customerID.String(), "10", "paid"))
		assert.Nil(t, out)
		assert.EqualError(t, err, "Database Error: Failed to Create Invoice.")
		assert.Empty(t, sig.paths)
	})
}

func TestActions_Update(t *testing.T) {
	id, customerID := uuid.New(), uuid.New()

	t.Run("ReplacesEditableFields", func(t *testing.T) {
		actions, repo, sig := newActions(t, time.Now())

		repo.EXPECT().
			UpdateInvoice(gomock.Any(), &invoice.Invoice{
				ID:         id,
				CustomerID: customerID,
				Amount:     25000,
				Status:     invoice.StatusPaid,
			}).
			Return(nil)

		out, err := actions.Update(context.Background(), id, formValues(customerID.String(), "250", "paid"))
		require.NoError(t, err)

		assert.Equal(t, invoice.ListPath, out.RedirectTo)
		assert.Equal(t, []string{invoice.ListPath, invoice.OverviewPath}, sig.paths)
	})

	t.Run("ZeroAmountNeverReachesStore", func(t *testing.T) {
		actions, _, sig := newActions(t, time.Now())

		out, err := actions.Update(context.Background(), id, formValues(customerID.String(), "0", "paid"))
		require.NoError(t, err)

		require.NotNil(t, out.State)
		assert.Equal(t, "Missing Fields. Failed to Update Invoice.", out.State.Message)
		assert.Equal(t, invoice.FieldErrors{
			invoice.FieldAmount: {"Please enter an amount greater than $0."},
		}, out.State.Errors)
		assert.Empty(t, sig.paths)
	})

	t.Run("StoreError", func(t *testing.T) {
		actions, repo, sig := newActions(t, time.Now())

		repo.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))

		out, err := actions.Update(context.Background(), id, formValues(customerID.String(), "250", "paid"))
		assert.Nil(t, out)
		assert.EqualError(t, err, "Database Error: Failed to Update Invoice.")
		assert.Empty(t, sig.paths)
	})
}

func TestActions_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("SignalsList", func(t *testing.T) {
		actions, repo, sig := newActions(t, time.Now())

		repo.EXPECT().DeleteInvoice(gomock.Any(), id).Return(nil)

		out, err := actions.Delete(context.Background(), id)
		require.NoError(t, err)

		assert.Nil(t, out.State)
		assert.Empty(t, out.RedirectTo)
		assert.Equal(t, []string{invoice.ListPath, invoice.OverviewPath}, sig.paths)
	})

	t.Run("StoreError", func(t *testing.T) {
		actions, repo, sig := newActions(t, time.Now())

		repo.EXPECT().DeleteInvoice(gomock.Any(), id).Return(errors.New("connection reset"))

		out, err := actions.Delete(context.Background(), id)
		assert.Nil(t, out)
		assert.EqualError(t, err, "Database Error: Failed to Delete Invoice.")
		assert.Empty(t, sig.paths)
	})
}
