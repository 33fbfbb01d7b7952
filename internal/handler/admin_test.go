package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newAdminHandler(env *testEnv) *AdminHandler {
	return NewAdminHandler(env.users, env.incomes, env.expenses, env.budgets, env.chats, env.advices, env.feedback, env.gamify, env.logger)
}

func TestAdminStatsAggregates(t *testing.T) {
	env := setupEnv(t)
	h := newAdminHandler(env)

	mara := mustCreateUser(t, env, "mara@example.com")
	mustCreateUser(t, env, "leo@example.com")
	if _, err := env.incomes.Create(mara, "Gig", "FREELANCE", 5000, mustDate(t, "2026-08-15"), nil); err != nil {
		t.Fatalf("seed income: %v", err)
	}
	if err := env.users.SetQuizResult(mara, "PLAN", "Try a no-spend week"); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Stats(rec, authedRequest("GET", "/api/admin/stats", nil, mara, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		TotalUsers         int            `json:"totalUsers"`
		QuizCompleted      int            `json:"quizCompleted"`
		QuizCompletionRate float64        `json:"quizCompletionRate"`
		TotalIncome        float64        `json:"totalIncome"`
		LevelDistribution  map[string]int `json:"levelDistribution"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalUsers != 2 {
		t.Errorf("totalUsers = %d, want 2", resp.TotalUsers)
	}
	if resp.QuizCompleted != 1 || resp.QuizCompletionRate != 50 {
		t.Errorf("quiz = %d at %v%%, want 1 at 50%%", resp.QuizCompleted, resp.QuizCompletionRate)
	}
	if resp.TotalIncome != 5000 {
		t.Errorf("totalIncome = %v, want 5000", resp.TotalIncome)
	}
	if resp.LevelDistribution["1"] != 2 {
		t.Errorf("levelDistribution = %v", resp.LevelDistribution)
	}
}

func TestAdminUserDetail(t *testing.T) {
	env := setupEnv(t)
	h := newAdminHandler(env)
	mara := mustCreateUser(t, env, "mara@example.com")

	if _, err := env.incomes.Create(mara, "Gig", "FREELANCE", 5000, mustDate(t, "2026-08-15"), nil); err != nil {
		t.Fatalf("seed income: %v", err)
	}

	req := authedRequest("GET", fmt.Sprintf("/api/admin/users/%d", mara), nil, mara, "")
	req.SetPathValue("id", fmt.Sprint(mara))
	rec := httptest.NewRecorder()
	h.UserDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Counts map[string]int `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Counts["income"] != 1 {
		t.Errorf("income count = %d, want 1", resp.Counts["income"])
	}

	// Unknown user is a 404, not an error.
	req = authedRequest("GET", "/api/admin/users/9999", nil, mara, "")
	req.SetPathValue("id", "9999")
	rec = httptest.NewRecorder()
	h.UserDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", rec.Code)
	}
}

func TestAdminFeedbackStats(t *testing.T) {
	env := setupEnv(t)
	h := newAdminHandler(env)
	mara := mustCreateUser(t, env, "mara@example.com")

	for _, rating := range []int{1, 1, 0, -1} {
		if _, err := env.feedback.Create(mara, rating, nil, nil, nil); err != nil {
			t.Fatalf("seed feedback: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	h.Feedback(rec, authedRequest("GET", "/api/admin/feedback", nil, mara, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
		Stats      struct {
			Positive int `json:"positive"`
			Neutral  int `json:"neutral"`
			Negative int `json:"negative"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 4 || resp.TotalPages != 1 {
		t.Errorf("total/pages = %d/%d, want 4/1", resp.Total, resp.TotalPages)
	}
	if resp.Stats.Positive != 2 || resp.Stats.Neutral != 1 || resp.Stats.Negative != 1 {
		t.Errorf("stats = %+v", resp.Stats)
	}
}
