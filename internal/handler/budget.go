package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/finance"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/model"
	"github.com/bfbl/moneyglow/internal/store"
)

const snapshotListLimit = 10

// BudgetHandler serves the quick 50/30/20 calculator snapshots and the
// persistent per-month budgets.
type BudgetHandler struct {
	budgets  *store.BudgetStore
	incomes  *store.IncomeStore
	expenses *store.ExpenseStore
	gamify   *gamification.Service
	logger   *slog.Logger
}

func NewBudgetHandler(budgets *store.BudgetStore, incomes *store.IncomeStore, expenses *store.ExpenseStore, gamify *gamification.Service, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgets:  budgets,
		incomes:  incomes,
		expenses: expenses,
		gamify:   gamify,
		logger:   logger.With("component", "budget_handler"),
	}
}

func (h *BudgetHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.budgets.ListSnapshots(auth.UserID(r.Context()), snapshotListLimit)
	if err != nil {
		h.logger.Error("list snapshots", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": snapshots})
}

// CreateSnapshot saves a calculator run with the exact 50/30/20 split.
func (h *BudgetHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Income float64 `json:"income"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Income <= 0 {
		writeError(w, http.StatusBadRequest, "Income must be positive")
		return
	}

	userID := auth.UserID(r.Context())
	split := finance.Split(req.Income)
	snapshot, err := h.budgets.CreateSnapshot(userID, req.Income, split.Needs, split.Wants, split.Savings)
	if err != nil {
		h.logger.Error("create snapshot", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := h.gamify.AwardXP(userID, gamification.ActionSaveBudget); err != nil {
		h.logger.Warn("award budget xp", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"snapshot": snapshot})
}

// GetMonthly returns the month's budget next to what was actually spent
// per category and the income tracked in the same window.
func (h *BudgetHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	start, end, ok := monthRange(r, time.Now())
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month or year")
		return
	}

	userID := auth.UserID(r.Context())
	budget, err := h.budgets.GetMonthly(userID, int(start.Month()), start.Year())
	if err != nil {
		h.logger.Error("get monthly budget", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	byCategory, err := h.expenses.SumByCategoryInRange(userID, start, end)
	if err != nil {
		h.logger.Error("sum expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	spent := map[string]float64{"needs": 0, "wants": 0, "savings": 0, "total": 0}
	for category, sum := range byCategory {
		spent[strings.ToLower(category)] = sum
		spent["total"] += sum
	}

	trackedIncome, err := h.incomes.SumInRange(userID, start, end)
	if err != nil {
		h.logger.Error("sum income", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"budget":        budget,
		"spent":         spent,
		"trackedIncome": trackedIncome,
	})
}

// SaveMonthly upserts the budget for one month with whole-peso buckets.
func (h *BudgetHandler) SaveMonthly(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Income float64 `json:"income"`
		Month  int     `json:"month"`
		Year   int     `json:"year"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Income <= 0 {
		writeError(w, http.StatusBadRequest, "Income must be positive")
		return
	}
	now := time.Now()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 || req.Year > 2200 {
		writeError(w, http.StatusBadRequest, "Invalid month or year")
		return
	}

	userID := auth.UserID(r.Context())
	split := finance.SplitRounded(req.Income)
	budget, err := h.budgets.UpsertMonthly(userID, req.Month, req.Year, req.Income, split.Needs, split.Wants, split.Savings)
	if err != nil {
		h.logger.Error("save monthly budget", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := h.gamify.AwardXP(userID, gamification.ActionSaveBudget); err != nil {
		h.logger.Warn("award budget xp", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]*model.MonthlyBudget{"budget": budget})
}
