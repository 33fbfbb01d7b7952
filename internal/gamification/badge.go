package gamification

// Badge is an achievement with its earned state for one user.
type Badge struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Earned      bool   `json:"earned"`
}

var badgeDefs = []Badge{
	{ID: "first_peso", Emoji: "💰", Name: "First Peso", Description: "Log your first income entry", Color: "#FFB86C"},
	{ID: "hustler", Emoji: "🔥", Name: "Hustler", Description: "Log 10+ income entries", Color: "#FF6B9D"},
	{ID: "money_machine", Emoji: "🤑", Name: "Money Machine", Description: "Log 50+ income entries", Color: "#50E3C2"},
	{ID: "budget_boss", Emoji: "📋", Name: "Budget Boss", Description: "Create your first monthly budget", Color: "#6C9CFF"},
	{ID: "self_aware", Emoji: "🧠", Name: "Self-Aware", Description: "Complete the money personality quiz", Color: "#FFB86C"},
	{ID: "week_warrior", Emoji: "⚡", Name: "Week Warrior", Description: "7+ day streak", Color: "#FF6B9D"},
	{ID: "monthly_master", Emoji: "👑", Name: "Monthly Master", Description: "30+ day streak", Color: "#50E3C2"},
	{ID: "rising_star", Emoji: "⭐", Name: "Rising Star", Description: "Reach Level 2", Color: "#FFB86C"},
	{ID: "money_master", Emoji: "💎", Name: "Money Master", Description: "Reach Level 4 (max)", Color: "#50E3C2"},
	{ID: "tracker", Emoji: "📝", Name: "Tracker", Description: "Log your first expense", Color: "#6C9CFF"},
}

// BadgeCounters are the per-user totals badge conditions are judged against.
type BadgeCounters struct {
	IncomeEntries  int
	MonthlyBudgets int
	Expenses       int
	QuizDone       bool
	LongestStreak  int
	Level          int
}

// ComputeBadges evaluates the full catalog against the counters. Badges
// are never stored; a counter that drops back below a threshold un-earns
// the badge.
func ComputeBadges(c BadgeCounters) []Badge {
	earned := map[string]bool{
		"first_peso":     c.IncomeEntries >= 1,
		"hustler":        c.IncomeEntries >= 10,
		"money_machine":  c.IncomeEntries >= 50,
		"budget_boss":    c.MonthlyBudgets >= 1,
		"self_aware":     c.QuizDone,
		"week_warrior":   c.LongestStreak >= 7,
		"monthly_master": c.LongestStreak >= 30,
		"rising_star":    c.Level >= 2,
		"money_master":   c.Level >= 4,
		"tracker":        c.Expenses >= 1,
	}

	badges := make([]Badge, len(badgeDefs))
	for i, def := range badgeDefs {
		badges[i] = def
		badges[i].Earned = earned[def.ID]
	}
	return badges
}
