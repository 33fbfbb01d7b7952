package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIncomeCreateAwardsXP(t *testing.T) {
	env := setupEnv(t)
	h := NewIncomeHandler(env.incomes, env.gamify, env.logger)
	userID := mustCreateUser(t, env, "mara@example.com")

	body := `{"source":"Freelance edit","type":"FREELANCE","amount":3500,"date":"2026-08-15"}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest("POST", "/api/income", strings.NewReader(body), userID, "mara@example.com"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	u, err := env.users.GetByID(userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.XP != 10 {
		t.Errorf("xp = %d, want 10", u.XP)
	}
}

func TestIncomeCreateValidation(t *testing.T) {
	env := setupEnv(t)
	h := NewIncomeHandler(env.incomes, env.gamify, env.logger)
	userID := mustCreateUser(t, env, "mara@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"missing source", `{"source":"","amount":100,"date":"2026-08-15"}`},
		{"zero amount", `{"source":"Gig","amount":0,"date":"2026-08-15"}`},
		{"negative amount", `{"source":"Gig","amount":-50,"date":"2026-08-15"}`},
		{"bad date", `{"source":"Gig","amount":100,"date":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest("POST", "/api/income", strings.NewReader(tt.body), userID, "mara@example.com"))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestIncomeListReturnsOwnEntries(t *testing.T) {
	env := setupEnv(t)
	h := NewIncomeHandler(env.incomes, env.gamify, env.logger)
	mara := mustCreateUser(t, env, "mara@example.com")
	leo := mustCreateUser(t, env, "leo@example.com")

	for i, userID := range []int64{mara, mara, leo} {
		body := fmt.Sprintf(`{"source":"Gig %d","amount":100,"date":"2026-08-15"}`, i)
		rec := httptest.NewRecorder()
		h.Create(rec, authedRequest("POST", "/api/income", strings.NewReader(body), userID, ""))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d: status = %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest("GET", "/api/income", nil, mara, ""))

	var resp struct {
		Entries []struct {
			UserID int64 `json:"userId"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(resp.Entries))
	}
	for _, e := range resp.Entries {
		if e.UserID != mara {
			t.Errorf("entry owner = %d, want %d", e.UserID, mara)
		}
	}
}

func TestIncomeDeleteGuardsOwnership(t *testing.T) {
	env := setupEnv(t)
	h := NewIncomeHandler(env.incomes, env.gamify, env.logger)
	mara := mustCreateUser(t, env, "mara@example.com")
	leo := mustCreateUser(t, env, "leo@example.com")

	entry, err := env.incomes.Create(mara, "Gig", "FREELANCE", 500, mustDate(t, "2026-08-15"), nil)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	target := fmt.Sprintf("/api/income?id=%d", entry.ID)
	rec := httptest.NewRecorder()
	h.Delete(rec, authedRequest("DELETE", target, nil, leo, ""))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, authedRequest("DELETE", target, nil, mara, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete status = %d, body = %s", rec.Code, rec.Body.String())
	}

	remaining, err := env.incomes.CountByUser(mara)
	if err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining entries = %d, want 0", remaining)
	}
}
