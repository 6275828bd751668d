package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/acme/ledgerboard/internal/customer"
	"github.com/acme/ledgerboard/internal/http/dashboard"
	"github.com/acme/ledgerboard/internal/invoice"
	"github.com/acme/ledgerboard/internal/revalidate"
	"github.com/acme/ledgerboard/internal/revenue"
)

type mocks struct {
	revenue   *revenue.MockRepository
	invoices  *invoice.MockRepository
	customers *invoice.MockCustomers
	registry  *revalidate.Registry
}

func setup(t *testing.T) (http.Handler, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		revenue:   revenue.NewMockRepository(ctrl),
		invoices:  invoice.NewMockRepository(ctrl),
		customers: invoice.NewMockCustomers(ctrl),
		registry:  revalidate.NewRegistry(),
	}

	h := dashboard.NewHandler(
		revenue.NewService(m.revenue),
		invoice.NewService(m.invoices, m.customers),
		m.registry,
	)

	r := chi.NewRouter()
	r.Route("/dashboard", h.Routes)

	return r, m
}

type overview struct {
	Revenue []struct {
		Month   string  `json:"month"`
		Revenue float64 `json:"revenue"`
	} `json:"revenue"`
	RevenueMessage string `json:"revenueMessage"`
	Cards          struct {
		NumberOfInvoices     int    `json:"numberOfInvoices"`
		NumberOfCustomers    int    `json:"numberOfCustomers"`
		TotalPaidInvoices    string `json:"totalPaidInvoices"`
		TotalPendingInvoices string `json:"totalPendingInvoices"`
	} `json:"cards"`
	LatestInvoices []struct {
		ID     uuid.UUID `json:"id"`
		Name   string    `json:"name"`
		Amount string    `json:"amount"`
	} `json:"latestInvoices"`
}

func TestHandler_Overview(t *testing.T) {
	router, m := setup(t)

	c1, i1 := uuid.New(), uuid.New()

	m.revenue.EXPECT().ListRevenue(gomock.Any()).Return([]revenue.Revenue{
		{Month: "Feb", Revenue: 1800},
		{Month: "Jan", Revenue: 2000},
	}, nil)
	m.invoices.EXPECT().CountInvoices(gomock.Any()).Return(1, nil)
	m.customers.EXPECT().Count(gomock.Any()).Return(1, nil)
	m.invoices.EXPECT().ListStatusAmounts(gomock.Any()).Return([]invoice.StatusAmount{
		{Status: invoice.StatusPending, Amount: 4999},
	}, nil)
	m.invoices.EXPECT().ListLatestInvoices(gomock.Any(), invoice.LatestLimit).Return([]*invoice.Invoice{
		{ID: i1, CustomerID: c1, Amount: 4999},
	}, nil)
	m.customers.EXPECT().Lookup(gomock.Any(), []uuid.UUID{c1}).Return(map[uuid.UUID]*customer.Customer{
		c1: {ID: c1, Name: "Delba de Oliveira"},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body overview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	require.Len(t, body.Revenue, 2)
	assert.Equal(t, "Jan", body.Revenue[0].Month)
	assert.Empty(t, body.RevenueMessage)
	assert.Equal(t, "$0.00", body.Cards.TotalPaidInvoices)
	assert.Equal(t, "$49.99", body.Cards.TotalPendingInvoices)
	require.Len(t, body.LatestInvoices, 1)
	assert.Equal(t, i1, body.LatestInvoices[0].ID)
	assert.Equal(t, "Delba de Oliveira", body.LatestInvoices[0].Name)
}

func TestHandler_Overview_NoRevenue(t *testing.T) {
	router, m := setup(t)

	m.revenue.EXPECT().ListRevenue(gomock.Any()).Return(nil, nil)
	m.invoices.EXPECT().CountInvoices(gomock.Any()).Return(0, nil)
	m.customers.EXPECT().Count(gomock.Any()).Return(0, nil)
	m.invoices.EXPECT().ListStatusAmounts(gomock.Any()).Return(nil, nil)
	m.invoices.EXPECT().ListLatestInvoices(gomock.Any(), invoice.LatestLimit).Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body overview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Empty(t, body.Revenue)
	assert.Equal(t, "No data available.", body.RevenueMessage)
	assert.Empty(t, body.LatestInvoices)
}

func TestHandler_Overview_AnyReadFails(t *testing.T) {
	router, m := setup(t)

	m.revenue.EXPECT().ListRevenue(gomock.Any()).Return(nil, errors.New("timeout"))
	m.invoices.EXPECT().CountInvoices(gomock.Any()).Return(0, nil).AnyTimes()
	m.customers.EXPECT().Count(gomock.Any()).Return(0, nil).AnyTimes()
	m.invoices.EXPECT().ListStatusAmounts(gomock.Any()).Return(nil, nil).AnyTimes()
	m.invoices.EXPECT().ListLatestInvoices(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch revenue data.\n", rec.Body.String())
}

func TestHandler_Overview_VersionFollowsWrites(t *testing.T) {
	router, m := setup(t)

	m.revenue.EXPECT().ListRevenue(gomock.Any()).Return(nil, nil).Times(2)
	m.invoices.EXPECT().CountInvoices(gomock.Any()).Return(0, nil).Times(2)
	m.customers.EXPECT().Count(gomock.Any()).Return(0, nil).Times(2)
	m.invoices.EXPECT().ListStatusAmounts(gomock.Any()).Return(nil, nil).Times(2)
	m.invoices.EXPECT().ListLatestInvoices(gomock.Any(), invoice.LatestLimit).Return(nil, nil).Times(2)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Revalidate-Version"))

	id := uuid.New()
	m.invoices.EXPECT().DeleteInvoice(gomock.Any(), id).Return(nil)

	actions := invoice.NewActions(invoice.NewService(m.invoices, m.customers), m.registry, time.Now)
	_, err := actions.Delete(context.Background(), id)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Revalidate-Version"))
}
