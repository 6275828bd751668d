package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/acme/ledgerboard/internal/customer"
	"github.com/acme/ledgerboard/internal/invoice"
	"github.com/acme/ledgerboard/internal/money"
)

type invoiceResponse struct {
	ID         uuid.UUID      `json:"id"`
	CustomerID uuid.UUID      `json:"customerId"`
	Amount     int64          `json:"amount"`
	Status     invoice.Status `json:"status"`
	Date       string         `json:"date"`
}

type rowResponse struct {
	ID          uuid.UUID      `json:"id"`
	CustomerID  uuid.UUID      `json:"customerId"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	ImageURL    string         `json:"imageUrl"`
	Amount      string         `json:"amount"`
	AmountCents int64          `json:"amountCents"`
	Date        string         `json:"date"`
	Status      invoice.Status `json:"status"`
}

type customerFieldResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type linksResponse struct {
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

type listResponse struct {
	Invoices   []rowResponse `json:"invoices"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
	Links      linksResponse `json:"links"`
}

type formResponse struct {
	Invoice   *invoiceResponse        `json:"invoice,omitempty"`
	Customers []customerFieldResponse `json:"customers"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     inv.Status,
		Date:       inv.Date.Format(time.DateOnly),
	}
}

func toRowResponses(rows []invoice.Row) []rowResponse {
	resp := make([]rowResponse, len(rows))
	for i, r := range rows {
		resp[i] = rowResponse{
			ID:          r.ID,
			CustomerID:  r.CustomerID,
			Name:        r.Name,
			Email:       r.Email,
			ImageURL:    r.ImageURL,
			Amount:      money.FormatCents(r.Amount),
			AmountCents: r.Amount,
			Date:        r.Date.Format(time.DateOnly),
			Status:      r.Status,
		}
	}

	return resp
}

func toCustomerFields(customers []*customer.Customer) []customerFieldResponse {
	resp := make([]customerFieldResponse, len(customers))
	for i, c := range customers {
		resp[i] = customerFieldResponse{ID: c.ID, Name: c.Name}
	}

	return resp
}
