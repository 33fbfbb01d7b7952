package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bfbl/moneyglow/internal/ai"
)

func newAdviceHandler(env *testEnv) *AdviceHandler {
	// Unconfigured client: tests only exercise the cached and peek paths.
	return NewAdviceHandler(env.advices, env.users, ai.NewClient(""), env.gamify, env.logger)
}

func TestAdviceReturnsCachedForToday(t *testing.T) {
	env := setupEnv(t)
	h := newAdviceHandler(env)
	userID := mustCreateUser(t, env, "mara@example.com")

	if _, err := env.advices.Create(userID, "Set aside 20% muna before spending!", time.Now()); err != nil {
		t.Fatalf("seed advice: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest("GET", "/api/advice", nil, userID, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Advice string `json:"advice"`
		Cached bool   `json:"cached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Cached {
		t.Error("expected cached = true")
	}
	if resp.Advice != "Set aside 20% muna before spending!" {
		t.Errorf("advice = %q", resp.Advice)
	}
}

func TestAdvicePeekDoesNotGenerate(t *testing.T) {
	env := setupEnv(t)
	h := newAdviceHandler(env)
	userID := mustCreateUser(t, env, "mara@example.com")

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest("GET", "/api/advice?peek=true", nil, userID, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Advice *string `json:"advice"`
		Cached bool    `json:"cached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Advice != nil || resp.Cached {
		t.Errorf("peek without advice: got %+v", resp)
	}

	count, err := env.advices.CountByUser(userID)
	if err != nil {
		t.Fatalf("count advice: %v", err)
	}
	if count != 0 {
		t.Errorf("advice rows = %d, want 0", count)
	}
}

func TestAdviceYesterdayDoesNotCountAsCached(t *testing.T) {
	env := setupEnv(t)
	h := newAdviceHandler(env)
	userID := mustCreateUser(t, env, "mara@example.com")

	yesterday := time.Now().AddDate(0, 0, -1)
	if _, err := env.advices.Create(userID, "Old tip", yesterday); err != nil {
		t.Fatalf("seed advice: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest("GET", "/api/advice?peek=true", nil, userID, ""))

	var resp struct {
		Cached bool `json:"cached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Cached {
		t.Error("yesterday's advice should not read as cached today")
	}
}
