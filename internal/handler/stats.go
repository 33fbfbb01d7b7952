package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/store"
)

// StatsHandler serves the gamification dashboard: XP, level, streaks,
// glow score, badges, and the daily check-in.
type StatsHandler struct {
	users  *store.UserStore
	gamify *gamification.Service
	logger *slog.Logger
}

func NewStatsHandler(users *store.UserStore, gamify *gamification.Service, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		users:  users,
		gamify: gamify,
		logger: logger.With("component", "stats_handler"),
	}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	user, err := h.users.GetByID(userID)
	if err != nil || user == nil {
		h.logger.Error("lookup user", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	score, label, err := h.gamify.GlowScore(userID, time.Now())
	if err != nil {
		h.logger.Error("compute glow score", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	level := gamification.CalculateLevel(user.XP)
	writeJSON(w, http.StatusOK, map[string]any{
		"xp":            user.XP,
		"level":         level.Level,
		"levelName":     level.Name,
		"levelEmoji":    level.Emoji,
		"nextLevel":     gamification.NextLevel(user.XP),
		"streakCount":   user.StreakCount,
		"longestStreak": user.LongestStreak,
		"glowScore":     score,
		"glowLabel":     label.Label,
		"glowEmoji":     label.Emoji,
	})
}

func (h *StatsHandler) Badges(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	badges, err := h.gamify.Badges(userID)
	if err != nil {
		h.logger.Error("compute badges", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	earned := 0
	for _, b := range badges {
		if b.Earned {
			earned++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"badges":      badges,
		"earnedCount": earned,
		"totalCount":  len(badges),
	})
}

// CheckIn advances the daily streak. The check-in XP is only awarded when
// the streak actually moved, so refreshing the page gives nothing extra.
func (h *StatsHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	result, err := h.gamify.UpdateStreak(userID, time.Now())
	if err != nil {
		h.logger.Error("update streak", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if result.IsNew {
		if _, err := h.gamify.AwardXP(userID, gamification.ActionDailyCheckIn); err != nil {
			h.logger.Warn("award check-in xp", "user_id", userID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}
