package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type mockChecker struct {
	superadmins map[string]bool
	err         error
}

func (m *mockChecker) IsSuperadmin(ctx context.Context, userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.superadmins[userID], nil
}

func signToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	signed, err := token.SignedString(GetJWTSecret())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func guardedRouter(authz SuperadminChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", RequireSuperadmin(authz), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func assertRejection(t *testing.T, w *httptest.ResponseRecorder, wantReason string) {
	t.Helper()
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["error"] != wantReason {
		t.Errorf("expected reason %q, got %q", wantReason, body["error"])
	}
}

func TestRequireSuperadminMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	router := guardedRouter(&mockChecker{})

	assertRejection(t, doRequest(router, ""), ErrNoAuthHeader)
}

func TestRequireSuperadminInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	router := guardedRouter(&mockChecker{})

	assertRejection(t, doRequest(router, "Bearer not-a-jwt"), ErrInvalidToken)
	assertRejection(t, doRequest(router, "Basic dXNlcjpwdw=="), ErrInvalidToken)
}

func TestRequireSuperadminUnresolvableSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	router := guardedRouter(&mockChecker{err: errors.New("record not found")})

	assertRejection(t, doRequest(router, "Bearer "+signToken(t, "ghost")), ErrInvalidToken)
}

func TestRequireSuperadminInsufficientRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	router := guardedRouter(&mockChecker{superadmins: map[string]bool{}})

	assertRejection(t, doRequest(router, "Bearer "+signToken(t, "user-1")), ErrNotSuperadmin)
}

func TestRequireSuperadminSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	router := guardedRouter(&mockChecker{superadmins: map[string]bool{"user-1": true}})

	w := doRequest(router, "Bearer "+signToken(t, "user-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["user_id"] != "user-1" {
		t.Errorf("expected userID propagated to context, got %q", body["user_id"])
	}
}
