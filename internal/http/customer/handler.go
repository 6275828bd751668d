package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/acme/ledgerboard/internal/customer"
	"github.com/acme/ledgerboard/internal/http/render"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type customerResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"imageUrl"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err, "Failed to fetch all customers.")
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}

	found, err := h.svc.Lookup(r.Context(), []uuid.UUID{id})
	if err != nil {
		render.Error(w, r, err, "Failed to fetch customers.")
		return
	}

	c, ok := found[id]
	if !ok {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}
