package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/acme/ledgerboard/internal/auth"
	"github.com/acme/ledgerboard/internal/http/render"
)

type Handler struct {
	svc          *auth.Service
	cookieName   string
	secureCookie bool
}

func NewHandler(svc *auth.Service, cookieName string, secureCookie bool) *Handler {
	return &Handler{svc: svc, cookieName: cookieName, secureCookie: secureCookie}
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	creds := auth.Credentials{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}

	session, msg, err := h.svc.Authenticate(r.Context(), creds)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to authenticate", "error", err)
		render.JSON(w, http.StatusInternalServerError, messageResponse{Message: "Something went wrong."})

		return
	}

	if session == nil {
		render.JSON(w, http.StatusUnauthorized, messageResponse{Message: msg})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, callbackURL(r.PostForm.Get("callbackUrl")), http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

// callbackURL only follows local paths; anything else lands on the dashboard.
func callbackURL(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return auth.DashboardPath
	}

	return raw
}
