package customer_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/acme/ledgerboard/internal/customer"
	customerHandler "github.com/acme/ledgerboard/internal/http/customer"
)

func setup(t *testing.T) (http.Handler, *customer.MockRepository) {
	t.Helper()

	repo := customer.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/dashboard/customers", customerHandler.NewHandler(customer.NewService(repo)).Routes)

	return r, repo
}

func TestHandler_List(t *testing.T) {
	router, repo := setup(t)

	repo.EXPECT().ListCustomers(gomock.Any()).Return([]*customer.Customer{
		{ID: uuid.New(), Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/customers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imageUrl":"/customers/amy-burns.png"`)
}

func TestHandler_List_StoreError(t *testing.T) {
	router, repo := setup(t)

	repo.EXPECT().ListCustomers(gomock.Any()).Return(nil, errors.New("connection refused"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/customers", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch all customers.\n", rec.Body.String())
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		router, repo := setup(t)

		repo.EXPECT().
			GetCustomersByIDs(gomock.Any(), []uuid.UUID{id}).
			Return([]*customer.Customer{{ID: id, Name: "Lee Robinson"}}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/customers/"+id.String(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Lee Robinson")
	})

	t.Run("Missing", func(t *testing.T) {
		router, repo := setup(t)

		repo.EXPECT().GetCustomersByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/customers/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
