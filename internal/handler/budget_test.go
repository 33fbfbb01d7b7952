package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBudgetHandler(env *testEnv) *BudgetHandler {
	return NewBudgetHandler(env.budgets, env.incomes, env.expenses, env.gamify, env.logger)
}

func TestCreateSnapshotSplitsFiftyThirtyTwenty(t *testing.T) {
	env := setupEnv(t)
	h := newBudgetHandler(env)
	userID := mustCreateUser(t, env, "mara@example.com")

	rec := httptest.NewRecorder()
	h.CreateSnapshot(rec, authedRequest("POST", "/api/budget", strings.NewReader(`{"income":20000}`), userID, ""))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Snapshot struct {
			Income  float64 `json:"income"`
			Needs   float64 `json:"needs"`
			Wants   float64 `json:"wants"`
			Savings float64 `json:"savings"`
		} `json:"snapshot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := resp.Snapshot
	if s.Needs != 10000 || s.Wants != 6000 || s.Savings != 4000 {
		t.Errorf("split = %v/%v/%v, want 10000/6000/4000", s.Needs, s.Wants, s.Savings)
	}

	u, _ := env.users.GetByID(userID)
	if u.XP != 15 {
		t.Errorf("xp = %d, want 15", u.XP)
	}
}

func TestGetMonthlyIncludesSpending(t *testing.T) {
	env := setupEnv(t)
	h := newBudgetHandler(env)
	userID := mustCreateUser(t, env, "mara@example.com")

	if _, err := env.budgets.UpsertMonthly(userID, 8, 2026, 30000, 15000, 9000, 6000); err != nil {
		t.Fatalf("seed budget: %v", err)
	}
	date := mustDate(t, "2026-08-10")
	if _, err := env.expenses.Create(userID, "NEEDS", "Rent", 7000, date, nil); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	if _, err := env.expenses.Create(userID, "WANTS", "Milk tea", 150, date, nil); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	if _, err := env.incomes.Create(userID, "Gig", "FREELANCE", 12000, date, nil); err != nil {
		t.Fatalf("seed income: %v", err)
	}

	rec := httptest.NewRecorder()
	h.GetMonthly(rec, authedRequest("GET", "/api/monthly-budget?month=8&year=2026", nil, userID, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Budget *struct {
			Income float64 `json:"income"`
		} `json:"budget"`
		Spent         map[string]float64 `json:"spent"`
		TrackedIncome float64            `json:"trackedIncome"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Budget == nil || resp.Budget.Income != 30000 {
		t.Fatalf("budget = %+v", resp.Budget)
	}
	if resp.Spent["needs"] != 7000 || resp.Spent["wants"] != 150 || resp.Spent["savings"] != 0 {
		t.Errorf("spent = %v", resp.Spent)
	}
	if resp.Spent["total"] != 7150 {
		t.Errorf("spent total = %v, want 7150", resp.Spent["total"])
	}
	if resp.TrackedIncome != 12000 {
		t.Errorf("trackedIncome = %v, want 12000", resp.TrackedIncome)
	}
}

func TestSaveMonthlyUsesWholePesos(t *testing.T) {
	env := setupEnv(t)
	h := newBudgetHandler(env)
	userID := mustCreateUser(t, env, "mara@example.com")

	body := `{"income":25555,"month":8,"year":2026}`
	rec := httptest.NewRecorder()
	h.SaveMonthly(rec, authedRequest("POST", "/api/monthly-budget", strings.NewReader(body), userID, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Budget struct {
			Needs   float64 `json:"needs"`
			Wants   float64 `json:"wants"`
			Savings float64 `json:"savings"`
		} `json:"budget"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b := resp.Budget
	// 25555: needs rounds to 12778, wants to 7667, savings takes the rest.
	if b.Needs != 12778 || b.Wants != 7667 {
		t.Errorf("needs/wants = %v/%v, want 12778/7667", b.Needs, b.Wants)
	}
	if b.Needs+b.Wants+b.Savings != 25555 {
		t.Errorf("buckets sum to %v, want 25555", b.Needs+b.Wants+b.Savings)
	}
}
