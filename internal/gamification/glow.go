package gamification

import "math"

// GlowLabel names a glow score band.
type GlowLabel struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Min   int    `json:"min"`
}

var glowLabels = []GlowLabel{
	{Label: "Needs TLC", Emoji: "🕯️", Min: 0},
	{Label: "Flickering", Emoji: "🔥", Min: 40},
	{Label: "Glowing", Emoji: "✨", Min: 60},
	{Label: "On Fire", Emoji: "💎", Min: 80},
}

// GetGlowLabel returns the band a score falls in.
func GetGlowLabel(score int) GlowLabel {
	current := glowLabels[0]
	for _, g := range glowLabels {
		if score >= g.Min {
			current = g
		}
	}
	return current
}

// GlowScore combines 30-day activity into a 0-100 financial-health score:
// income entries logged (1 pt each, max 30), budget snapshots saved
// (5 pts each, max 20), streak days (3.5 pts each, max 25), and total XP
// (1 pt per 24 XP, max 25).
func GlowScore(incomeEntries30d, snapshots30d, streak, xp int) int {
	trackingScore := min(incomeEntries30d, 30)
	budgetScore := min(snapshots30d*5, 20)
	streakScore := min(int(math.Round(float64(streak)*3.5)), 25)
	xpScore := min(int(math.Round(float64(xp)/24)), 25)
	return trackingScore + budgetScore + streakScore + xpScore
}
