package gamification

// Action identifies an XP-earning user action.
type Action string

const (
	ActionLogIncome    Action = "LOG_INCOME"
	ActionSaveBudget   Action = "SAVE_BUDGET"
	ActionDailyAdvice  Action = "GET_DAILY_ADVICE"
	ActionCompleteQuiz Action = "COMPLETE_QUIZ"
	ActionDailyCheckIn Action = "DAILY_CHECK_IN"
	ActionLogExpense   Action = "LOG_EXPENSE"
)

var xpAwards = map[Action]int{
	ActionLogIncome:    10,
	ActionSaveBudget:   15,
	ActionDailyAdvice:  20,
	ActionCompleteQuiz: 25,
	ActionDailyCheckIn: 5,
	ActionLogExpense:   5,
}

// XPAward returns the XP granted for an action. Unknown actions grant zero.
func XPAward(a Action) int {
	return xpAwards[a]
}

type Level struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	MinXP int    `json:"minXP"`
}

var levels = []Level{
	{Level: 1, Name: "Newbie", Emoji: "🌱", MinXP: 0},
	{Level: 2, Name: "Rising Star", Emoji: "⭐", MinXP: 100},
	{Level: 3, Name: "Pro Creator", Emoji: "🚀", MinXP: 300},
	{Level: 4, Name: "Money Master", Emoji: "👑", MinXP: 600},
}

// CalculateLevel returns the highest level whose threshold the XP total
// has reached.
func CalculateLevel(xp int) Level {
	current := levels[0]
	for _, lvl := range levels {
		if xp >= lvl.MinXP {
			current = lvl
		}
	}
	return current
}

// LevelProgress describes the next level up and how far along the user is.
type LevelProgress struct {
	Level
	XPNeeded int     `json:"xpNeeded"`
	Progress float64 `json:"progress"`
}

// NextLevel returns the level above the XP total, or nil at max level.
// Progress is the percentage of the gap between the current and next
// thresholds already covered.
func NextLevel(xp int) *LevelProgress {
	current := CalculateLevel(xp)
	for _, lvl := range levels {
		if lvl.MinXP > xp {
			return &LevelProgress{
				Level:    lvl,
				XPNeeded: lvl.MinXP - xp,
				Progress: float64(xp-current.MinXP) / float64(lvl.MinXP-current.MinXP) * 100,
			}
		}
	}
	return nil
}
