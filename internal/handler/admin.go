package handler

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/store"
)

const adminFeedbackPageSize = 50

// AdminHandler serves the operator dashboard. All routes sit behind the
// admin middleware.
type AdminHandler struct {
	users    *store.UserStore
	incomes  *store.IncomeStore
	expenses *store.ExpenseStore
	budgets  *store.BudgetStore
	chats    *store.ChatStore
	advices  *store.AdviceStore
	feedback *store.FeedbackStore
	gamify   *gamification.Service
	logger   *slog.Logger
}

func NewAdminHandler(users *store.UserStore, incomes *store.IncomeStore, expenses *store.ExpenseStore, budgets *store.BudgetStore, chats *store.ChatStore, advices *store.AdviceStore, feedback *store.FeedbackStore, gamify *gamification.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		users:    users,
		incomes:  incomes,
		expenses: expenses,
		budgets:  budgets,
		chats:    chats,
		advices:  advices,
		feedback: feedback,
		gamify:   gamify,
		logger:   logger.With("component", "admin_handler"),
	}
}

// Stats returns app-wide aggregates for the admin dashboard.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := h.users.Count()
	if err != nil {
		h.internalError(w, "count users", err)
		return
	}
	onboarded, err := h.users.CountOnboarded()
	if err != nil {
		h.internalError(w, "count onboarded", err)
		return
	}
	activeLast7Days, err := h.users.CountActiveSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		h.internalError(w, "count active", err)
		return
	}
	quizCompleted, err := h.users.CountQuizCompleted()
	if err != nil {
		h.internalError(w, "count quiz completed", err)
		return
	}
	totalIncome, err := h.incomes.SumAll()
	if err != nil {
		h.internalError(w, "sum income", err)
		return
	}
	totalExpenses, err := h.expenses.SumAll()
	if err != nil {
		h.internalError(w, "sum expenses", err)
		return
	}
	monthlyBudgets, err := h.budgets.CountMonthlyAll()
	if err != nil {
		h.internalError(w, "count budgets", err)
		return
	}
	levelDistribution, err := h.users.LevelDistribution()
	if err != nil {
		h.internalError(w, "level distribution", err)
		return
	}

	quizCompletionRate := 0.0
	if totalUsers > 0 {
		quizCompletionRate = math.Round(float64(quizCompleted) / float64(totalUsers) * 100)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalUsers":         totalUsers,
		"onboardedUsers":     onboarded,
		"activeLast7Days":    activeLast7Days,
		"quizCompleted":      quizCompleted,
		"quizCompletionRate": quizCompletionRate,
		"totalIncome":        totalIncome,
		"totalExpenses":      totalExpenses,
		"monthlyBudgets":     monthlyBudgets,
		"levelDistribution":  levelDistribution,
	})
}

// Users returns a searchable, paged user listing.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := q.Get("search")

	users, total, err := h.users.List(search, page, limit)
	if err != nil {
		h.internalError(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UserDetail returns one user's profile with activity counts, glow score,
// and badges.
func (h *AdminHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Valid id required")
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		h.internalError(w, "lookup user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	incomeCount, err := h.incomes.CountByUser(id)
	if err != nil {
		h.internalError(w, "count income", err)
		return
	}
	expenseCount, err := h.expenses.CountByUser(id)
	if err != nil {
		h.internalError(w, "count expenses", err)
		return
	}
	budgetCount, err := h.budgets.CountMonthlyByUser(id)
	if err != nil {
		h.internalError(w, "count budgets", err)
		return
	}
	chatCount, err := h.chats.CountByUser(id)
	if err != nil {
		h.internalError(w, "count chats", err)
		return
	}
	adviceCount, err := h.advices.CountByUser(id)
	if err != nil {
		h.internalError(w, "count advice", err)
		return
	}

	score, _, err := h.gamify.GlowScore(id, time.Now())
	if err != nil {
		h.internalError(w, "compute glow score", err)
		return
	}
	badges, err := h.gamify.Badges(id)
	if err != nil {
		h.internalError(w, "compute badges", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": user,
		"counts": map[string]int{
			"income":         incomeCount,
			"expenses":       expenseCount,
			"monthlyBudgets": budgetCount,
			"chatMessages":   chatCount,
			"dailyAdvice":    adviceCount,
		},
		"glowScore": score,
		"badges":    badges,
	})
}

// Feedback returns the paged feedback log with sentiment totals.
func (h *AdminHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	entries, total, err := h.feedback.List(page, adminFeedbackPageSize)
	if err != nil {
		h.internalError(w, "list feedback", err)
		return
	}
	stats, err := h.feedback.Stats()
	if err != nil {
		h.internalError(w, "feedback stats", err)
		return
	}

	totalPages := (total + adminFeedbackPageSize - 1) / adminFeedbackPageSize
	writeJSON(w, http.StatusOK, map[string]any{
		"feedback":   entries,
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
		"stats":      stats,
	})
}

func (h *AdminHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
