package revenue

import (
	"slices"
	"strings"
	"time"
)

// Revenue is read-only reference data, one row per calendar month.
type Revenue struct {
	Month   string
	Revenue float64
}

// monthIndex maps "January" or "Jan" (any case) to 1..12, and anything else to 0.
func monthIndex(label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0
	}

	label = strings.ToUpper(label[:1]) + strings.ToLower(label[1:])

	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, label); err == nil {
			return int(t.Month())
		}
	}

	return 0
}

// SortByMonth orders rows January through December. Rows whose label is not
// a month name keep their relative order and go last.
func SortByMonth(rows []Revenue) {
	slices.SortStableFunc(rows, func(a, b Revenue) int {
		ai, bi := monthIndex(a.Month), monthIndex(b.Month)

		switch {
		case ai == bi:
			return 0
		case ai == 0:
			return 1
		case bi == 0:
			return -1
		}

		return ai - bi
	})
}
