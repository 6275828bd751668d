package revalidate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acme/ledgerboard/internal/revalidate"
)

func TestRegistry_Revalidate(t *testing.T) {
	r := revalidate.NewRegistry()

	assert.Zero(t, r.Get("/dashboard/invoices").Version)

	r.Revalidate(context.Background(), "/dashboard/invoices")
	r.Revalidate(context.Background(), "/dashboard/invoices")

	e := r.Get("/dashboard/invoices")
	assert.Equal(t, uint64(2), e.Version)
	assert.False(t, e.At.IsZero())
	assert.Zero(t, r.Get("/dashboard").Version)
}

func TestRegistry_ConcurrentSignals(t *testing.T) {
	r := revalidate.NewRegistry()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			r.Revalidate(context.Background(), "/p")
		}()
	}

	wg.Wait()

	assert.Equal(t, uint64(50), r.Get("/p").Version)
}
