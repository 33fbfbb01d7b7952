package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bfbl/moneyglow/internal/ai"
	"github.com/bfbl/moneyglow/internal/email"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/handler"
	"github.com/bfbl/moneyglow/internal/middleware"
	"github.com/bfbl/moneyglow/internal/session"
	"github.com/bfbl/moneyglow/internal/store"
	ws "github.com/bfbl/moneyglow/internal/websocket"
)

// Config carries the server-level knobs main resolves from the
// environment.
type Config struct {
	SecureCookies bool
}

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	users       *store.UserStore
	links       *store.MagicLinkStore
	codec       *session.Codec
	authH       *handler.AuthHandler
	profileH    *handler.ProfileHandler
	incomeH     *handler.IncomeHandler
	expenseH    *handler.ExpenseHandler
	budgetH     *handler.BudgetHandler
	adviceH     *handler.AdviceHandler
	chatH       *handler.ChatHandler
	quizH       *handler.QuizHandler
	statsH      *handler.StatsHandler
	insightsH   *handler.InsightsHandler
	feedbackH   *handler.FeedbackHandler
	adminH      *handler.AdminHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, emailClient *email.Client, aiClient *ai.Client, codec *session.Codec, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	magicLinkStore := store.NewMagicLinkStore(db)
	incomeStore := store.NewIncomeStore(db)
	expenseStore := store.NewExpenseStore(db)
	budgetStore := store.NewBudgetStore(db)
	adviceStore := store.NewAdviceStore(db)
	chatStore := store.NewChatStore(db)
	feedbackStore := store.NewFeedbackStore(db)

	gamify := gamification.NewService(userStore, incomeStore, budgetStore, expenseStore, hub, logger)

	return &Server{
		db:          db,
		hub:         hub,
		users:       userStore,
		links:       magicLinkStore,
		codec:       codec,
		authH:       handler.NewAuthHandler(userStore, magicLinkStore, emailClient, codec, cfg.SecureCookies, logger),
		profileH:    handler.NewProfileHandler(userStore, emailClient, logger),
		incomeH:     handler.NewIncomeHandler(incomeStore, gamify, logger),
		expenseH:    handler.NewExpenseHandler(expenseStore, gamify, logger),
		budgetH:     handler.NewBudgetHandler(budgetStore, incomeStore, expenseStore, gamify, logger),
		adviceH:     handler.NewAdviceHandler(adviceStore, userStore, aiClient, gamify, logger),
		chatH:       handler.NewChatHandler(chatStore, userStore, aiClient, logger),
		quizH:       handler.NewQuizHandler(userStore, aiClient, gamify, logger),
		statsH:      handler.NewStatsHandler(userStore, gamify, logger),
		insightsH:   handler.NewInsightsHandler(incomeStore, expenseStore, logger),
		feedbackH:   handler.NewFeedbackHandler(feedbackStore, logger),
		adminH:      handler.NewAdminHandler(userStore, incomeStore, expenseStore, budgetStore, chatStore, adviceStore, feedbackStore, gamify, logger),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// MagicLinkStore returns the magic link store for cleanup tasks.
func (s *Server) MagicLinkStore() *store.MagicLinkStore {
	return s.links
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/send-magic-link", s.rateLimitedHandler(s.authH.SendMagicLink))
	outerMux.HandleFunc("GET /api/auth/verify", s.rateLimitedHandler(s.authH.Verify))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes behind the session middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.codec)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)

	// Profile + onboarding
	mux.HandleFunc("GET /api/user/profile", s.profileH.Get)
	mux.HandleFunc("PUT /api/user/profile", s.profileH.Update)
	mux.HandleFunc("POST /api/user/onboarding", s.profileH.CompleteOnboarding)

	// Gamification
	mux.HandleFunc("GET /api/user/stats", s.statsH.Stats)
	mux.HandleFunc("GET /api/user/badges", s.statsH.Badges)
	mux.HandleFunc("POST /api/user/check-in", s.statsH.CheckIn)

	// Income + expenses
	mux.HandleFunc("GET /api/income", s.incomeH.List)
	mux.HandleFunc("POST /api/income", s.incomeH.Create)
	mux.HandleFunc("DELETE /api/income", s.incomeH.Delete)
	mux.HandleFunc("GET /api/expenses", s.expenseH.List)
	mux.HandleFunc("POST /api/expenses", s.expenseH.Create)
	mux.HandleFunc("DELETE /api/expenses", s.expenseH.Delete)

	// Budgets
	mux.HandleFunc("GET /api/budget", s.budgetH.ListSnapshots)
	mux.HandleFunc("POST /api/budget", s.budgetH.CreateSnapshot)
	mux.HandleFunc("GET /api/monthly-budget", s.budgetH.GetMonthly)
	mux.HandleFunc("POST /api/monthly-budget", s.budgetH.SaveMonthly)

	// AI coach
	mux.HandleFunc("GET /api/advice", s.adviceH.Get)
	mux.HandleFunc("GET /api/chat", s.chatH.History)
	mux.HandleFunc("POST /api/chat", s.chatH.Send)

	// Quiz
	mux.HandleFunc("GET /api/quiz", s.quizH.Questions)
	mux.HandleFunc("POST /api/quiz/result", s.quizH.Submit)

	// Insights
	mux.HandleFunc("GET /api/insights/monthly-summary", s.insightsH.MonthlySummary)
	mux.HandleFunc("GET /api/insights/tax-estimate", s.insightsH.TaxEstimate)
	mux.HandleFunc("GET /api/insights/projection", s.insightsH.Projection)

	// Feedback
	mux.HandleFunc("POST /api/feedback", s.feedbackH.Submit)

	// Admin, behind a second gate
	adminOnly := middleware.RequireAdmin(s.users)
	mux.Handle("GET /api/admin/stats", adminOnly(http.HandlerFunc(s.adminH.Stats)))
	mux.Handle("GET /api/admin/users", adminOnly(http.HandlerFunc(s.adminH.Users)))
	mux.Handle("GET /api/admin/users/{id}", adminOnly(http.HandlerFunc(s.adminH.UserDetail)))
	mux.Handle("GET /api/admin/feedback", adminOnly(http.HandlerFunc(s.adminH.Feedback)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
