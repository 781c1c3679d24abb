package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/domain/service"
	mockSvc "userhub/internal/mocks/service"
)

func newAuthTestContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().
		Validate("valid-token").
		Return(&service.Claims{AccountID: 7, Email: "acct@example.com"}, nil)

	c, _ := newAuthTestContext("Bearer valid-token")

	nextCalled := false
	err := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
	assert.Equal(t, int64(7), c.Get(KeyAccountID))
	assert.Equal(t, "acct@example.com", c.Get(KeyEmail))
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthTestContext("")

	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("next handler must not run without credentials")

		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthTestContext("Basic dXNlcjpwYXNz")

	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("next handler must not run without credentials")

		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().
		Validate("garbage").
		Return(nil, errors.New("failed to parse token"))

	c, rec := newAuthTestContext("Bearer garbage")

	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("next handler must not run with a bad token")

		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}
