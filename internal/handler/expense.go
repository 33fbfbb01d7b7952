package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/model"
	"github.com/bfbl/moneyglow/internal/store"
)

// ExpenseHandler covers expense tracking, scoped to one month at a time.
type ExpenseHandler struct {
	expenses *store.ExpenseStore
	gamify   *gamification.Service
	logger   *slog.Logger
}

func NewExpenseHandler(expenses *store.ExpenseStore, gamify *gamification.Service, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenses: expenses,
		gamify:   gamify,
		logger:   logger.With("component", "expense_handler"),
	}
}

// monthRange resolves ?month=&year= to a [start, end) window, defaulting
// to the current month.
func monthRange(r *http.Request, now time.Time) (time.Time, time.Time, bool) {
	month := int(now.Month())
	year := now.Year()
	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, time.Time{}, false
		}
		month = m
	}
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 2000 || y > 2200 {
			return time.Time{}, time.Time{}, false
		}
		year = y
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), true
}

func validCategory(c string) bool {
	switch c {
	case model.CategoryNeeds, model.CategoryWants, model.CategorySavings:
		return true
	}
	return false
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, ok := monthRange(r, time.Now())
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid month or year")
		return
	}

	expenses, err := h.expenses.ListInRange(auth.UserID(r.Context()), start, end)
	if err != nil {
		h.logger.Error("list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Note        *string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	category := strings.ToUpper(strings.TrimSpace(req.Category))
	if !validCategory(category) {
		writeError(w, http.StatusBadRequest, "Category must be NEEDS, WANTS, or SAVINGS")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	userID := auth.UserID(r.Context())
	expense, err := h.expenses.Create(userID, category, req.Subcategory, req.Amount, date, req.Note)
	if err != nil {
		h.logger.Error("create expense", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := h.gamify.AwardXP(userID, gamification.ActionLogExpense); err != nil {
		h.logger.Warn("award expense xp", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"expense": expense})
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Valid id required")
		return
	}

	expense, err := h.expenses.GetByID(id)
	if err != nil {
		h.logger.Error("lookup expense", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if expense == nil || expense.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}

	if err := h.expenses.Delete(id); err != nil {
		h.logger.Error("delete expense", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
