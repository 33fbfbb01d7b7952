package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	token, err := codec.Create(42, "mara@example.com")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	claims := codec.Verify(token)
	if claims == nil {
		t.Fatal("expected valid claims")
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Email != "mara@example.com" {
		t.Errorf("email = %q, want mara@example.com", claims.Email)
	}
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	token, err := NewCodec("secret-a").Create(42, "mara@example.com")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if claims := NewCodec("secret-b").Verify(token); claims != nil {
		t.Error("token signed with another secret should not verify")
	}
}

func TestCodecRejectsExpired(t *testing.T) {
	codec := NewCodec("test-secret")
	codec.ttl = -time.Hour

	token, err := codec.Create(42, "mara@example.com")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if claims := codec.Verify(token); claims != nil {
		t.Error("expired token should not verify")
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret")
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if claims := codec.Verify(token); claims != nil {
			t.Errorf("token %q should not verify", token)
		}
	}
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetCookie(rec, "token-value", false)

	set := rec.Header().Get("Set-Cookie")
	if !strings.Contains(set, CookieName+"=token-value") {
		t.Errorf("Set-Cookie = %q, missing session cookie", set)
	}
	if !strings.Contains(set, "HttpOnly") {
		t.Errorf("Set-Cookie = %q, want HttpOnly", set)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", set)
	if got := FromRequest(req); got != "token-value" {
		t.Errorf("FromRequest = %q, want token-value", got)
	}
}

func TestClearCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearCookie(rec, false)

	set := rec.Header().Get("Set-Cookie")
	if !strings.Contains(set, "Max-Age=0") {
		t.Errorf("Set-Cookie = %q, want immediate expiry", set)
	}
}
