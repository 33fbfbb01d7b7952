package gamification

import "time"

// StreakState is the stored streak position for a user.
type StreakState struct {
	LastCheckIn   *time.Time
	StreakCount   int
	LongestStreak int
}

// StreakResult is the streak after applying a check-in. IsNew is false
// when the user had already checked in on the same calendar day, in which
// case nothing should be written.
type StreakResult struct {
	StreakCount   int  `json:"streakCount"`
	LongestStreak int  `json:"longestStreak"`
	IsNew         bool `json:"isNew"`
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextStreak applies a check-in at now to the stored state. A check-in on
// the day after the last one extends the streak; the same day is a no-op;
// any other gap, including a last check-in in the future, resets to 1.
// The longest streak never decreases.
func NextStreak(state StreakState, now time.Time) StreakResult {
	if state.LastCheckIn == nil {
		return StreakResult{
			StreakCount:   1,
			LongestStreak: max(1, state.LongestStreak),
			IsNew:         true,
		}
	}

	today := midnight(now)
	lastDay := midnight(state.LastCheckIn.In(now.Location()))
	diffDays := int(today.Sub(lastDay).Hours() / 24)

	switch diffDays {
	case 0:
		return StreakResult{
			StreakCount:   state.StreakCount,
			LongestStreak: state.LongestStreak,
			IsNew:         false,
		}
	case 1:
		streak := state.StreakCount + 1
		return StreakResult{
			StreakCount:   streak,
			LongestStreak: max(streak, state.LongestStreak),
			IsNew:         true,
		}
	default:
		return StreakResult{
			StreakCount:   1,
			LongestStreak: max(1, state.LongestStreak),
			IsNew:         true,
		}
	}
}
