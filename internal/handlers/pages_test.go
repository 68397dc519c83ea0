package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transit_dashboard/internal/models"
)

func TestIndex(t *testing.T) {
	s, _, _, _ := newTestService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `action="/login"`) {
		t.Fatalf("anonymous landing: status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/", nil), testToken))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("logged in: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestDashboard_RendersUserAndStops(t *testing.T) {
	s, auth, _, _ := newTestService()
	auth.currentUser = &models.User{ID: testIdentity.UserID, Username: "alice"}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), testToken))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"Welcome, alice", `value="4111,4116"`, "Karlsplatz"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestDashboard_Anonymous(t *testing.T) {
	s, _, _, _ := newTestService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestDashboard_DeletedUserClearsSession(t *testing.T) {
	s, _, _, _ := newTestService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), testToken))

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	if ck := findCookie(w.Result(), sessionCookie); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", ck)
	}
}

func TestDashboard_StoreError(t *testing.T) {
	s, auth, _, _ := newTestService()
	auth.currentErr = errors.New("db down")
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/dashboard", nil), testToken))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}
