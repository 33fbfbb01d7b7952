package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bfbl/moneyglow/internal/ai"
	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/store"
)

// AdviceHandler serves the daily AI tip. Advice is generated at most once
// per user per day; repeat requests return the cached row.
type AdviceHandler struct {
	advices *store.AdviceStore
	users   *store.UserStore
	coach   *ai.Client
	gamify  *gamification.Service
	logger  *slog.Logger
}

func NewAdviceHandler(advices *store.AdviceStore, users *store.UserStore, coach *ai.Client, gamify *gamification.Service, logger *slog.Logger) *AdviceHandler {
	return &AdviceHandler{
		advices: advices,
		users:   users,
		coach:   coach,
		gamify:  gamify,
		logger:  logger.With("component", "advice_handler"),
	}
}

// Get returns today's advice. With ?peek=true it only reports whether
// advice exists, so the dashboard can show the button state without
// burning the day's generation.
func (h *AdviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	now := time.Now()

	cached, err := h.advices.GetForDay(userID, now)
	if err != nil {
		h.logger.Error("lookup daily advice", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, map[string]any{"advice": cached.Content, "cached": true})
		return
	}

	if r.URL.Query().Get("peek") == "true" {
		writeJSON(w, http.StatusOK, map[string]any{"advice": nil, "cached": false})
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil || user == nil {
		h.logger.Error("lookup user", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	content, err := h.coach.DailyAdvice(r.Context(), user, now)
	if err != nil {
		h.logger.Error("generate advice", "user_id", userID, "error", err)
		writeError(w, http.StatusBadGateway, "Advice is unavailable right now")
		return
	}

	if _, err := h.advices.Create(userID, content, now); err != nil {
		// A concurrent request may have cached first; the content still
		// goes back to the caller.
		h.logger.Warn("cache advice", "user_id", userID, "error", err)
	}

	if _, err := h.gamify.AwardXP(userID, gamification.ActionDailyAdvice); err != nil {
		h.logger.Warn("award advice xp", "user_id", userID, "error", err)
	}
	if _, err := h.gamify.UpdateStreak(userID, now); err != nil {
		h.logger.Warn("update streak", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"advice": content, "cached": false})
}
