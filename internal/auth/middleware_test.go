package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func protectedRouter(t *testing.T, m *Manager, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAccessToken(m)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		username, err := Username(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "identity missing"})
			return
		}
		roles, _ := Roles(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"username": username, "roles": roles})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestRequireAccessToken_MissingHeaderIs401(t *testing.T) {
	r := protectedRouter(t, testManager(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAccessToken_MalformedSchemeIs401(t *testing.T) {
	r := protectedRouter(t, testManager(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAccessToken_InvalidTokenIs403(t *testing.T) {
	r := protectedRouter(t, testManager(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAccessToken_ExpiredTokenIs403(t *testing.T) {
	m := testManager(t)
	r := protectedRouter(t, m)

	tok, err := m.IssueAccessToken(time.Now().Add(-time.Hour), "alice", []string{"Employee"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAccessToken_InjectsIdentity(t *testing.T) {
	m := testManager(t)
	r := protectedRouter(t, m)

	tok, err := m.IssueAccessToken(time.Now(), "alice", []string{"Employee", "Manager"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAnyRole_GateIsLayeredOnTop(t *testing.T) {
	m := testManager(t)
	r := protectedRouter(t, m, RequireAnyRole("Manager", "Admin"))

	employee, err := m.IssueAccessToken(time.Now(), "bob", []string{"Employee"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	manager, err := m.IssueAccessToken(time.Now(), "alice", []string{"Employee", "Manager"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+employee)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+manager)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager, got %d", w.Code)
	}
}
