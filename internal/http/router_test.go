package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/acme/ledgerboard/internal/auth"
	"github.com/acme/ledgerboard/internal/customer"
	ledgerHttp "github.com/acme/ledgerboard/internal/http"
	authHandler "github.com/acme/ledgerboard/internal/http/auth"
	customerHandler "github.com/acme/ledgerboard/internal/http/customer"
	"github.com/acme/ledgerboard/internal/http/dashboard"
	invoiceHandler "github.com/acme/ledgerboard/internal/http/invoice"
	"github.com/acme/ledgerboard/internal/invoice"
	"github.com/acme/ledgerboard/internal/ratelimit"
	"github.com/acme/ledgerboard/internal/revalidate"
	"github.com/acme/ledgerboard/internal/revenue"
)

func newRouter(t *testing.T) (http.Handler, *auth.Sessions, *customer.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)

	sessions, err := auth.NewSessions("secret", time.Hour)
	require.NoError(t, err)

	customerRepo := customer.NewMockRepository(ctrl)

	var (
		registry    = revalidate.NewRegistry()
		customerSvc = customer.NewService(customerRepo)
		invoiceSvc  = invoice.NewService(invoice.NewMockRepository(ctrl), customerSvc)
		revenueSvc  = revenue.NewService(revenue.NewMockRepository(ctrl))
		authSvc     = auth.NewService(auth.NewMockRepository(ctrl), sessions, ratelimit.Unlimited{})
	)

	router := ledgerHttp.New(
		[]string{"http://localhost:3000"},
		auth.Gate(sessions, "session"),
		authHandler.NewHandler(authSvc, "session", false),
		dashboard.NewHandler(revenueSvc, invoiceSvc, registry),
		invoiceHandler.NewHandler(invoiceSvc, invoice.NewActions(invoiceSvc, registry, time.Now), customerSvc, registry),
		customerHandler.NewHandler(customerSvc),
	)

	return router, sessions, customerRepo
}

func TestRouter_Health(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_GateRedirectsAnonymous(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/customers", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Fcustomers", rec.Header().Get("Location"))
}

func TestRouter_SignedInReachesDashboard(t *testing.T) {
	router, sessions, customerRepo := newRouter(t)

	session, err := sessions.Issue(&auth.User{ID: uuid.New(), Email: "user@nextmail.com"})
	require.NoError(t, err)

	customerRepo.EXPECT().ListCustomers(gomock.Any()).Return([]*customer.Customer{
		{ID: uuid.New(), Name: "Amy Burns"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/customers", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.Token})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amy Burns")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.Token})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}
