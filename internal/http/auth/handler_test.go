package auth_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/acme/ledgerboard/internal/auth"
	authHandler "github.com/acme/ledgerboard/internal/http/auth"
)

func newHandler(t *testing.T) (*authHandler.Handler, *auth.MockRepository, *auth.MockLimiter, *auth.Sessions) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := auth.NewMockRepository(ctrl)
	limiter := auth.NewMockLimiter(ctrl)

	sessions, err := auth.NewSessions("secret", time.Hour)
	require.NoError(t, err)

	return authHandler.NewHandler(auth.NewService(repo, sessions, limiter), "session", true), repo, limiter, sessions
}

func loginRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func TestHandler_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &auth.User{ID: uuid.New(), Email: "user@nextmail.com", Password: string(hashed)}

	t.Run("SetsCookieAndRedirects", func(t *testing.T) {
		h, repo, limiter, sessions := newHandler(t)

		limiter.EXPECT().Allow(gomock.Any(), "user@nextmail.com").Return(true)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "user@nextmail.com").Return(user, nil)

		rec := httptest.NewRecorder()
		h.Login(rec, loginRequest(url.Values{
			"email":       {"user@nextmail.com"},
			"password":    {"123456"},
			"callbackUrl": {"/dashboard/invoices"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		claims, err := sessions.Verify(cookies[0].Value)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.Subject)
	})

	t.Run("ExternalCallbackIgnored", func(t *testing.T) {
		h, repo, limiter, _ := newHandler(t)

		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(true)
		repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(user, nil)

		rec := httptest.NewRecorder()
		h.Login(rec, loginRequest(url.Values{
			"email":       {"user@nextmail.com"},
			"password":    {"123456"},
			"callbackUrl": {"//evil.example.com"},
		}))

		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		h, repo, limiter, _ := newHandler(t)

		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(true)
		repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, auth.ErrUserNotFound)

		rec := httptest.NewRecorder()
		h.Login(rec, loginRequest(url.Values{"email": {"nobody@nextmail.com"}, "password": {"123456"}}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials."}`, rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("TooManyAttempts", func(t *testing.T) {
		h, _, limiter, _ := newHandler(t)

		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false)

		rec := httptest.NewRecorder()
		h.Login(rec, loginRequest(url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Too many attempts. Try again later."}`, rec.Body.String())
	})
}

func TestHandler_Logout(t *testing.T) {
	h, _, _, _ := newHandler(t)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/dashboard/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
