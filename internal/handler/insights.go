package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/finance"
	"github.com/bfbl/moneyglow/internal/store"
)

const summaryMonths = 6

// InsightsHandler serves the read-only analysis endpoints: the monthly
// cash-flow summary, the TRAIN-law tax estimate, and the compound
// interest projection.
type InsightsHandler struct {
	incomes  *store.IncomeStore
	expenses *store.ExpenseStore
	logger   *slog.Logger
}

func NewInsightsHandler(incomes *store.IncomeStore, expenses *store.ExpenseStore, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		incomes:  incomes,
		expenses: expenses,
		logger:   logger.With("component", "insights_handler"),
	}
}

type monthSummary struct {
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// MonthlySummary returns income versus expenses for the last six months,
// oldest first.
func (h *InsightsHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	now := time.Now()

	months := make([]monthSummary, 0, summaryMonths)
	for i := summaryMonths - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		income, err := h.incomes.SumInRange(userID, start, end)
		if err != nil {
			h.logger.Error("sum income", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		spent, err := h.expenses.SumInRange(userID, start, end)
		if err != nil {
			h.logger.Error("sum expenses", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		months = append(months, monthSummary{
			Month:    int(start.Month()),
			Year:     start.Year(),
			Label:    start.Format("Jan"),
			Income:   income,
			Expenses: spent,
			Net:      income - spent,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"months": months})
}

// TaxEstimate compares the graduated and 8% flat TRAIN-law options for a
// gross annual income.
func (h *InsightsHandler) TaxEstimate(w http.ResponseWriter, r *http.Request) {
	gross, err := strconv.ParseFloat(r.URL.Query().Get("gross"), 64)
	if err != nil || gross < 0 {
		writeError(w, http.StatusBadRequest, "Valid gross income required")
		return
	}
	writeJSON(w, http.StatusOK, finance.CompareTaxOptions(gross))
}

// Projection returns the compound interest outcome for a monthly saving
// plan, with a year-by-year series for charting.
func (h *InsightsHandler) Projection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	monthly, err := strconv.ParseFloat(q.Get("monthly"), 64)
	if err != nil || monthly <= 0 {
		writeError(w, http.StatusBadRequest, "Valid monthly amount required")
		return
	}
	years, err := strconv.Atoi(q.Get("years"))
	if err != nil || years < 1 || years > 50 {
		writeError(w, http.StatusBadRequest, "Years must be between 1 and 50")
		return
	}
	rate, err := strconv.ParseFloat(q.Get("rate"), 64)
	if err != nil || rate < 0 || rate > 100 {
		writeError(w, http.StatusBadRequest, "Rate must be between 0 and 100")
		return
	}

	total := finance.FutureValue(monthly, years, rate)
	deposited := monthly * float64(years) * 12
	writeJSON(w, http.StatusOK, map[string]any{
		"futureValue":    total,
		"totalDeposited": deposited,
		"totalInterest":  total - deposited,
		"series":         finance.YearlySeries(monthly, years, rate),
	})
}
