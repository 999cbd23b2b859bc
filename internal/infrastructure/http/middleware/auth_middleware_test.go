package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

type stubAuthenticator map[string]auth.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (auth.Principal, error) {
	if token == "expired" {
		return auth.Principal{}, ucerrors.ErrTokenExpired
	}
	p, ok := s[token]
	if !ok {
		return auth.Principal{}, ucerrors.ErrTokenInvalid
	}
	return p, nil
}

func runChain(t *testing.T, req *http.Request, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		fromCtx, ok := auth.FromContext(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, p, fromCtx)
		id, _ := GetUserID(c)
		return c.String(http.StatusOK, id.String())
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return rec, h(c)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected echo.HTTPError, got %v", err)
	return he.Code
}

func TestEchoAuth(t *testing.T) {
	member := auth.Principal{UserID: uuid.New(), Role: entities.RoleMember}
	admin := auth.Principal{UserID: uuid.New(), Role: entities.RoleAdmin}
	stub := stubAuthenticator{"member": member, "admin": admin}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer member")
	rec, err := runChain(t, req, EchoAuth(stub))
	require.NoError(t, err)
	assert.Equal(t, member.UserID.String(), rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "admin"})
	_, err = runChain(t, req, EchoAuth(stub), RequireAdmin())
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer member")
	_, err = runChain(t, req, EchoAuth(stub), RequireAdmin())
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestEchoAuth_Rejects(t *testing.T) {
	stub := stubAuthenticator{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := runChain(t, req, EchoAuth(stub))
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	_, err = runChain(t, req, EchoAuth(stub))
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.Equal(t, "Token expired", err.(*echo.HTTPError).Message)
}

func TestExtractToken_QueryOnlyForWebsocket(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/ws?token=abc", nil)
	assert.Equal(t, "", extractToken(req))

	req.Header.Set("Upgrade", "websocket")
	assert.Equal(t, "abc", extractToken(req))
}
