package customer

import "github.com/google/uuid"

// Customer is owned by an external system; this service only reads it.
type Customer struct {
	ID       uuid.UUID
	Name     string
	Email    string
	ImageURL string
}
