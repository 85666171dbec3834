package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend/internal/middleware"
	"backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type mockScanService struct {
	calls    int
	snapshot *model.InventorySnapshot
	err      error
}

func (m *mockScanService) RunScan(ctx context.Context, triggeredBy string) (*model.InventorySnapshot, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	snap := m.snapshot
	if snap == nil {
		snap = &model.InventorySnapshot{GeneratedAt: time.Now().UTC(), TriggeredBy: triggeredBy}
	}
	return snap, nil
}

type allowAllChecker struct{}

func (allowAllChecker) IsSuperadmin(ctx context.Context, userID string) (bool, error) {
	return true, nil
}

func newScanRouter(svc *mockScanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewScanHandler(svc, allowAllChecker{}).RegisterRoutes(router.Group(""))
	return router
}

func superadminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1", "role": model.RoleSuperadmin})
	signed, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestIntrospectRejectsMissingAuthHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	svc := &mockScanService{}
	router := newScanRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/system/introspect", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"error":"no authorization header"}` {
		t.Errorf("unexpected body: %s", body)
	}
	// No scan runs and nothing is archived on auth failure.
	if svc.calls != 0 {
		t.Errorf("scan service invoked %d times despite rejection", svc.calls)
	}
}

func TestIntrospectReturnsJSONByDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	svc := &mockScanService{}
	router := newScanRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/system/introspect", nil)
	req.Header.Set("Authorization", "Bearer "+superadminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="inventory.json"` {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		t.Errorf("unexpected Content-Type: %s", w.Header().Get("Content-Type"))
	}
	if svc.calls != 1 {
		t.Errorf("expected exactly one scan, got %d", svc.calls)
	}
}

func TestIntrospectRendersMarkdown(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	svc := &mockScanService{snapshot: &model.InventorySnapshot{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		TriggeredBy: "user-1",
	}}
	router := newScanRouter(svc)

	for _, format := range []string{"markdown", "md"} {
		req := httptest.NewRequest(http.MethodGet, "/api/system/introspect?format="+format, nil)
		req.Header.Set("Authorization", "Bearer "+superadminToken(t))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("format=%s: expected 200, got %d", format, w.Code)
		}
		if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="inventory.md"` {
			t.Errorf("format=%s: unexpected Content-Disposition: %s", format, cd)
		}
		if !strings.HasPrefix(w.Body.String(), "# System Inventory Report") {
			t.Errorf("format=%s: body is not the markdown report", format)
		}
	}
}

func TestIntrospectAcceptsAnyMethod(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	svc := &mockScanService{}
	router := newScanRouter(svc)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		req := httptest.NewRequest(method, "/api/system/introspect", nil)
		req.Header.Set("Authorization", "Bearer "+superadminToken(t))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("method %s: expected 200, got %d", method, w.Code)
		}
	}
}

func TestIntrospectUnexpectedFailure(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	svc := &mockScanService{err: errScanFailed}
	router := newScanRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/system/introspect", nil)
	req.Header.Set("Authorization", "Bearer "+superadminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"error":"metadata store unreachable"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

var errScanFailed = errors.New("metadata store unreachable")
