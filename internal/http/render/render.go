// Package render writes the JSON bodies and cache headers shared by the
// dashboard handlers.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/acme/ledgerboard/internal/apperr"
	"github.com/acme/ledgerboard/internal/revalidate"
)

const (
	// HeaderRevalidateVersion carries the invalidation version of the page being read.
	HeaderRevalidateVersion = "X-Revalidate-Version"
	// HeaderRevalidatedPath names the page a mutation invalidated.
	HeaderRevalidatedPath = "X-Revalidated-Path"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error responds 500 with the user-safe message of a store error, or with
// fallback for anything else. Details only go to the log.
func Error(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	msg := fallback

	var storeErr *apperr.StoreError
	if errors.As(err, &storeErr) {
		msg = storeErr.Message
	} else {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	http.Error(w, msg, http.StatusInternalServerError)
}

// Version stamps the response with the current invalidation version of path.
func Version(w http.ResponseWriter, registry *revalidate.Registry, path string) {
	w.Header().Set(HeaderRevalidateVersion, strconv.FormatUint(registry.Get(path).Version, 10))
}

// Revalidated marks the response as having invalidated path.
func Revalidated(w http.ResponseWriter, path string) {
	w.Header().Set(HeaderRevalidatedPath, path)
}
