package invoice

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("invoice not found")

// CustomerNotFoundError reports an invoice whose customer no longer exists.
// It aborts the whole batch being enriched.
type CustomerNotFoundError struct {
	CustomerID uuid.UUID
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer not found for customer_id: %s", e.CustomerID)
}
