package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acme/ledgerboard/internal/http/render"
	"github.com/acme/ledgerboard/internal/invoice"
	"github.com/acme/ledgerboard/internal/revalidate"
	"github.com/acme/ledgerboard/internal/revenue"
)

const noRevenue = "No data available."

type Handler struct {
	revenue  *revenue.Service
	invoices *invoice.Service
	registry *revalidate.Registry
}

func NewHandler(revenueSvc *revenue.Service, invoiceSvc *invoice.Service, registry *revalidate.Registry) *Handler {
	return &Handler{revenue: revenueSvc, invoices: invoiceSvc, registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.overview)
}

type revenueResponse struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type cardsResponse struct {
	NumberOfInvoices     int    `json:"numberOfInvoices"`
	NumberOfCustomers    int    `json:"numberOfCustomers"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

type latestInvoiceResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"imageUrl"`
	Amount   string    `json:"amount"`
}

type overviewResponse struct {
	Revenue        []revenueResponse       `json:"revenue"`
	RevenueMessage string                  `json:"revenueMessage,omitempty"`
	Cards          cardsResponse           `json:"cards"`
	LatestInvoices []latestInvoiceResponse `json:"latestInvoices"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	var (
		rev    []revenue.Revenue
		cards  *invoice.CardData
		latest []invoice.LatestInvoice
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() (err error) {
		rev, err = h.revenue.Fetch(ctx)
		return err
	})

	g.Go(func() (err error) {
		cards, err = h.invoices.FetchCardData(ctx)
		return err
	})

	g.Go(func() (err error) {
		latest, err = h.invoices.FetchLatestInvoices(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		render.Error(w, r, err, "Failed to fetch dashboard data.")
		return
	}

	resp := overviewResponse{
		Revenue: make([]revenueResponse, len(rev)),
		Cards: cardsResponse{
			NumberOfInvoices:     cards.NumberOfInvoices,
			NumberOfCustomers:    cards.NumberOfCustomers,
			TotalPaidInvoices:    cards.TotalPaidInvoices,
			TotalPendingInvoices: cards.TotalPendingInvoices,
		},
		LatestInvoices: make([]latestInvoiceResponse, len(latest)),
	}

	for i, m := range rev {
		resp.Revenue[i] = revenueResponse{Month: m.Month, Revenue: m.Revenue}
	}

	if len(rev) == 0 {
		resp.RevenueMessage = noRevenue
	}

	for i, l := range latest {
		resp.LatestInvoices[i] = latestInvoiceResponse{
			ID:       l.ID,
			Name:     l.Name,
			Email:    l.Email,
			ImageURL: l.ImageURL,
			Amount:   l.Amount,
		}
	}

	render.Version(w, h.registry, invoice.OverviewPath)
	render.JSON(w, http.StatusOK, resp)
}
