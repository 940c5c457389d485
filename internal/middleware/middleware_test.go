package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"smartshelf/internal/config"
	"smartshelf/internal/domain/model"
	"smartshelf/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims(userID int64, role model.Role, tv int) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"tv":   tv,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func doRequest(token string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	h := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_NoHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	rec := doRequest("", middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, "another-secret", validClaims(1, model.RoleUser, 0))

	rec := doRequest(token, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	claims := validClaims(1, model.RoleUser, 0)
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	rec := doRequest(token, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, validClaims(7, model.RoleAdmin, 2))

	rec := doRequest(token, middleware.AuthJWT(cfg))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// RoleGuard
// =====================

func TestRoleGuard_UserForbiddenOnManagerRoute(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, validClaims(1, model.RoleUser, 0))

	rec := doRequest(token,
		middleware.AuthJWT(cfg),
		middleware.RoleGuard(model.RoleStoreManager, model.RoleAdmin),
	)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleGuard_ManagerAllowed(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, validClaims(1, model.RoleStoreManager, 0))

	rec := doRequest(token,
		middleware.AuthJWT(cfg),
		middleware.RoleGuard(model.RoleStoreManager, model.RoleAdmin),
	)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleGuard_AdminOnlyRoute(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, validClaims(1, model.RoleStoreManager, 0))

	rec := doRequest(token,
		middleware.AuthJWT(cfg),
		middleware.RoleGuard(model.RoleAdmin),
	)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =====================
// TokenVersionGuard
// =====================

type stubUserRepo struct {
	user *model.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (r *stubUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.user, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (r *stubUserRepo) List(ctx context.Context) ([]model.User, error) { return nil, nil }

func (r *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

func (r *stubUserRepo) IncrementTokenVersion(ctx context.Context, userID int64) error { return nil }

// 昇格・降格後の古いJWT（tv不一致）は401
func TestTokenVersionGuard_StaleTokenRejected(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, validClaims(1, model.RoleUser, 0))

	repo := &stubUserRepo{user: &model.User{ID: 1, Role: model.RoleStoreManager, TokenVersion: 1}}
	rec := doRequest(token,
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(repo),
	)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_MatchingVersionPasses(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	token := signToken(t, testSecret, validClaims(1, model.RoleUser, 1))

	repo := &stubUserRepo{user: &model.User{ID: 1, Role: model.RoleUser, TokenVersion: 1}}
	rec := doRequest(token,
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(repo),
	)
	assert.Equal(t, http.StatusOK, rec.Code)
}
