package gamification

import (
	"log/slog"
	"time"

	"github.com/bfbl/moneyglow/internal/store"
)

// Broadcaster pushes live gamification events to a user's connected clients.
type Broadcaster interface {
	Broadcast(userID int64, event string, payload any)
}

// Service runs the XP, streak, glow and badge rules against the stores
// and announces changes over the broadcaster.
type Service struct {
	users    *store.UserStore
	incomes  *store.IncomeStore
	budgets  *store.BudgetStore
	expenses *store.ExpenseStore
	hub      Broadcaster
	logger   *slog.Logger
}

func NewService(users *store.UserStore, incomes *store.IncomeStore, budgets *store.BudgetStore, expenses *store.ExpenseStore, hub Broadcaster, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		incomes:  incomes,
		budgets:  budgets,
		expenses: expenses,
		hub:      hub,
		logger:   logger.With("component", "gamification"),
	}
}

// AwardResult reports the user's totals after an XP award.
type AwardResult struct {
	XP        int `json:"xp"`
	Level     int `json:"level"`
	XPAwarded int `json:"xpAwarded"`
}

// AwardXP grants the action's XP and recomputes the level from the new
// total. The increment is atomic in the store, so concurrent awards for
// the same user both land; the level write is idempotent either way.
func (s *Service) AwardXP(userID int64, action Action) (AwardResult, error) {
	delta := XPAward(action)
	xp, err := s.users.AddXP(userID, delta)
	if err != nil {
		return AwardResult{}, err
	}

	lvl := CalculateLevel(xp)
	if err := s.users.SetLevel(userID, lvl.Level); err != nil {
		return AwardResult{}, err
	}

	result := AwardResult{XP: xp, Level: lvl.Level, XPAwarded: delta}
	s.broadcast(userID, "xp_awarded", map[string]any{
		"action":    string(action),
		"xpAwarded": delta,
		"xp":        xp,
		"level":     lvl.Level,
	})
	if CalculateLevel(xp - delta).Level != lvl.Level {
		s.logger.Info("level up", "user_id", userID, "level", lvl.Level, "xp", xp)
		s.broadcast(userID, "level_up", lvl)
	}
	return result, nil
}

// UpdateStreak applies a check-in at now. Same-day repeats change nothing
// and write nothing.
func (s *Service) UpdateStreak(userID int64, now time.Time) (StreakResult, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return StreakResult{}, err
	}

	result := NextStreak(StreakState{
		LastCheckIn:   u.LastCheckIn,
		StreakCount:   u.StreakCount,
		LongestStreak: u.LongestStreak,
	}, now)

	if !result.IsNew {
		return result, nil
	}
	if err := s.users.SetStreak(userID, result.StreakCount, result.LongestStreak, now); err != nil {
		return StreakResult{}, err
	}
	s.broadcast(userID, "streak_updated", result)
	return result, nil
}

// GlowScore computes the user's current glow score and its label from the
// last 30 days of activity.
func (s *Service) GlowScore(userID int64, now time.Time) (int, GlowLabel, error) {
	cutoff := now.Add(-30 * 24 * time.Hour)

	u, err := s.users.GetByID(userID)
	if err != nil {
		return 0, GlowLabel{}, err
	}
	incomeCount, err := s.incomes.CountCreatedSince(userID, cutoff)
	if err != nil {
		return 0, GlowLabel{}, err
	}
	snapshotCount, err := s.budgets.CountSnapshotsSince(userID, cutoff)
	if err != nil {
		return 0, GlowLabel{}, err
	}

	score := GlowScore(incomeCount, snapshotCount, u.StreakCount, u.XP)
	return score, GetGlowLabel(score), nil
}

// Badges evaluates the full badge catalog for the user.
func (s *Service) Badges(userID int64) ([]Badge, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	incomeCount, err := s.incomes.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	budgetCount, err := s.budgets.CountMonthlyByUser(userID)
	if err != nil {
		return nil, err
	}
	expenseCount, err := s.expenses.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return ComputeBadges(BadgeCounters{
		IncomeEntries:  incomeCount,
		MonthlyBudgets: budgetCount,
		Expenses:       expenseCount,
		QuizDone:       u.QuizResult != nil,
		LongestStreak:  u.LongestStreak,
		Level:          u.Level,
	}), nil
}

func (s *Service) broadcast(userID int64, event string, payload any) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(userID, event, payload)
}
