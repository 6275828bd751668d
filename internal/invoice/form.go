package invoice

import (
	"errors"
	"math"
	"net/url"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acme/ledgerboard/internal/money"
)

// Form field names as submitted by the invoice create and edit forms.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// FieldErrors maps a form field to its messages.
type FieldErrors map[string][]string

// FormState is what a failed action hands back to the form for re-rendering.
type FormState struct {
	Errors  FieldErrors `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Values are the typed fields of a valid invoice form.
type Values struct {
	CustomerID  uuid.UUID
	AmountCents int64
	Status      Status
}

type form struct {
	CustomerID string `form:"customerId" validate:"required,uuid"`
	Amount     string `form:"amount" validate:"amount_positive,amount_max"`
	Status     string `form:"status" validate:"oneof=pending paid"`
}

var messages = map[string]string{
	"customerId.required":    "Please select a customer.",
	"customerId.uuid":        "Please select a customer.",
	"amount.amount_positive": "Please enter an amount greater than $0.",
	"amount.amount_max":      "Please enter a smaller amount.",
	"status.oneof":           "Please select an invoice status.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	_ = v.RegisterValidation("amount_positive", func(fl validator.FieldLevel) bool {
		d, err := money.ParseAmount(fl.Field().String())
		return err == nil && money.ToCents(d) > 0
	})

	_ = v.RegisterValidation("amount_max", func(fl validator.FieldLevel) bool {
		d, err := money.ParseAmount(fl.Field().String())
		if err != nil {
			return true
		}

		return d.LessThanOrEqual(maxAmount)
	})

	return v
}

// The amount column is a 32-bit integer of cents.
var maxAmount = money.FromCents(math.MaxInt32)

// ParseForm validates a submitted invoice form. Validation failures are
// returned as field errors, never as an error value.
func ParseForm(values url.Values) (*Values, FieldErrors) {
	f := form{
		CustomerID: values.Get(FieldCustomerID),
		Amount:     values.Get(FieldAmount),
		Status:     values.Get(FieldStatus),
	}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, FieldErrors{"": {err.Error()}}
		}

		return nil, fieldErrors(verrs)
	}

	amount, _ := money.ParseAmount(f.Amount)

	return &Values{
		CustomerID:  uuid.MustParse(f.CustomerID),
		AmountCents: money.ToCents(amount),
		Status:      Status(f.Status),
	}, nil
}

func fieldErrors(verrs validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, len(verrs))

	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}

		out[fe.Field()] = append(out[fe.Field()], msg)
	}

	return out
}
