package invoice

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acme/ledgerboard/internal/customer"
	"github.com/acme/ledgerboard/internal/http/render"
	"github.com/acme/ledgerboard/internal/invoice"
	"github.com/acme/ledgerboard/internal/revalidate"
	"github.com/acme/ledgerboard/internal/searchparams"
)

type Handler struct {
	svc       *invoice.Service
	actions   *invoice.Actions
	customers *customer.Service
	registry  *revalidate.Registry
}

func NewHandler(svc *invoice.Service, actions *invoice.Actions, customers *customer.Service, registry *revalidate.Registry) *Handler {
	return &Handler{svc: svc, actions: actions, customers: customers, registry: registry}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/create", h.createForm)
	r.Get("/{id}", h.get)
	r.Get("/{id}/edit", h.editForm)
	r.Post("/{id}", h.update)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("query"))

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	var (
		rows       []invoice.Row
		totalPages int
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() (err error) {
		rows, err = h.svc.FetchFilteredInvoices(ctx, query, page)
		return err
	})

	g.Go(func() (err error) {
		totalPages, err = h.svc.FetchInvoicesPages(ctx, query)
		return err
	})

	if err := g.Wait(); err != nil {
		render.Error(w, r, err, "Failed to fetch invoices.")
		return
	}

	resp := listResponse{
		Invoices:   toRowResponses(rows),
		TotalPages: totalPages,
		Page:       page,
	}

	if page > 1 {
		resp.Links.Prev = invoice.ListPath + "?" + searchparams.Set(q, searchparams.Params{"page": {strconv.Itoa(page - 1)}})
	}

	if page < totalPages {
		resp.Links.Next = invoice.ListPath + "?" + searchparams.Set(q, searchparams.Params{"page": {strconv.Itoa(page + 1)}})
	}

	render.Version(w, h.registry, invoice.ListPath)
	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		render.Error(w, r, err, "Failed to fetch all customers.")
		return
	}

	render.JSON(w, http.StatusOK, formResponse{Customers: toCustomerFields(customers)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	customers, err := h.customers.List(r.Context())
	if err != nil {
		render.Error(w, r, err, "Failed to fetch all customers.")
		return
	}

	resp := toResponse(inv)

	render.JSON(w, http.StatusOK, formResponse{
		Invoice:   &resp,
		Customers: toCustomerFields(customers),
	})
}

// find loads the invoice named by the id URL param, writing a 404 when it
// does not exist.
func (h *Handler) find(w http.ResponseWriter, r *http.Request) (*invoice.Invoice, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return nil, false
	}

	inv, err := h.svc.FetchInvoiceByID(r.Context(), id)
	if err != nil {
		render.Error(w, r, err, "Failed to fetch invoice.")
		return nil, false
	}

	if inv == nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return nil, false
	}

	return inv, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	out, err := h.actions.Create(r.Context(), r.PostForm)
	if err != nil {
		render.Error(w, r, err, "Database Error: Failed to Create Invoice.")
		return
	}

	h.respond(w, r, out)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	out, err := h.actions.Update(r.Context(), id, r.PostForm)
	if err != nil {
		render.Error(w, r, err, "Database Error: Failed to Update Invoice.")
		return
	}

	h.respond(w, r, out)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := h.actions.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err, "Database Error: Failed to Delete Invoice.")
		return
	}

	render.Revalidated(w, invoice.ListPath)

	// Form posts come from the list page and go back to it.
	if r.Method == http.MethodPost {
		http.Redirect(w, r, invoice.ListPath, http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, out *invoice.Outcome) {
	if out.State != nil {
		render.JSON(w, http.StatusUnprocessableEntity, out.State)
		return
	}

	render.Revalidated(w, invoice.ListPath)
	http.Redirect(w, r, out.RedirectTo, http.StatusSeeOther)
}
