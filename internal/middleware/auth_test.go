package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/database"
	"github.com/bfbl/moneyglow/internal/session"
	"github.com/bfbl/moneyglow/internal/store"
)

func TestRequireAuthRejectsMissingCookie(t *testing.T) {
	codec := session.NewCodec("test-secret")
	handler := RequireAuth(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unauthorized") {
		t.Errorf("body = %q, want Unauthorized error", rec.Body.String())
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	codec := session.NewCodec("test-secret")
	handler := RequireAuth(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with a forged session")
	}))

	forged, err := session.NewCodec("other-secret").Create(42, "mara@example.com")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: forged})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthPopulatesContext(t *testing.T) {
	codec := session.NewCodec("test-secret")
	var got auth.AuthContext
	handler := RequireAuth(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
	}))

	token, err := codec.Create(42, "mara@example.com")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.UserID != 42 || got.Email != "mara@example.com" {
		t.Errorf("auth context = %+v", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	users := store.NewUserStore(db)

	regular, err := users.Create("mara@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	admin, err := users.Create("admin@example.com")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if _, err := db.Exec(`UPDATE users SET is_admin = 1 WHERE id = ?`, admin.ID); err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	handler := RequireAdmin(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(userID int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req = req.WithContext(auth.WithAuth(req.Context(), auth.AuthContext{UserID: userID}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := serve(regular.ID); rec.Code != http.StatusForbidden {
		t.Errorf("regular user status = %d, want 403", rec.Code)
	}
	if rec := serve(admin.ID); rec.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", rec.Code)
	}
}
