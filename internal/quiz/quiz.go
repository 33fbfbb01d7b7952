// Package quiz holds the money-personality quiz: the question catalog,
// the four result profiles, and the scoring rule.
package quiz

import "fmt"

// Type is one of the four money personalities.
type Type string

const (
	TypeYOLO   Type = "YOLO"
	TypeChill  Type = "CHILL"
	TypePlan   Type = "PLAN"
	TypeMaster Type = "MASTER"
)

// typeRank orders personalities from least to most financially advanced,
// used to break scoring ties.
var typeRank = map[Type]int{
	TypeYOLO:   0,
	TypeChill:  1,
	TypePlan:   2,
	TypeMaster: 3,
}

// Valid reports whether t is a known personality.
func (t Type) Valid() bool {
	_, ok := typeRank[t]
	return ok
}

// Option is one answer choice mapped to the personality it signals.
type Option struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
}

type Question struct {
	Q       string   `json:"q"`
	Options []Option `json:"options"`
}

// Questions is the full quiz, served to clients in order.
var Questions = []Question{
	{
		Q: "You receive ₱5,000 from a brand deal. What do you do first?",
		Options: []Option{
			{Text: "Celebrate with a shopping spree!", Type: TypeYOLO},
			{Text: "Save some, spend some, balance lang", Type: TypeChill},
			{Text: "Put 50% in savings, budget the rest", Type: TypePlan},
			{Text: "Track it, allocate to budget categories, save 20%+", Type: TypeMaster},
		},
	},
	{
		Q: "It's month-end and you have ₱2,000 left. You…",
		Options: []Option{
			{Text: "Treat myself, I earned it!", Type: TypeYOLO},
			{Text: "Transfer half to GCash savings, keep the rest", Type: TypeChill},
			{Text: "Add it all to my emergency fund", Type: TypePlan},
			{Text: "Review my spending this month and adjust next month's budget", Type: TypeMaster},
		},
	},
	{
		Q: "A friend says 'invest ₱10,000 and get ₱100,000 in one month!' You…",
		Options: []Option{
			{Text: "Send money ASAP, sounds amazing!", Type: TypeYOLO},
			{Text: "Ask a few questions but probably try it", Type: TypeChill},
			{Text: "Research first, if it's too good to be true, it probably is", Type: TypePlan},
			{Text: "Report it as a potential scam and warn others", Type: TypeMaster},
		},
	},
	{
		Q: "Your phone breaks. What's your move?",
		Options: []Option{
			{Text: "Buy the latest model on installment, YOLO!", Type: TypeYOLO},
			{Text: "Get it repaired, or buy a cheaper replacement", Type: TypeChill},
			{Text: "Use my emergency fund, this is what it's for", Type: TypePlan},
			{Text: "Claim warranty/insurance, use emergency fund as backup", Type: TypeMaster},
		},
	},
	{
		Q: "How do you track your income from content creation?",
		Options: []Option{
			{Text: "I don't, basta may pera, okay na", Type: TypeYOLO},
			{Text: "I check my GCash/Maya history sometimes", Type: TypeChill},
			{Text: "I use a spreadsheet or notes app", Type: TypePlan},
			{Text: "I have a system: tracker, separate accounts, tax set-aside", Type: TypeMaster},
		},
	},
}

// Result is the profile shown for a personality.
type Result struct {
	Title string `json:"title"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
	Desc  string `json:"desc"`
	Tip   string `json:"tip"`
}

var Results = map[Type]Result{
	TypeYOLO: {
		Title: "The YOLO Spender",
		Emoji: "💃",
		Color: "#FF6B9D",
		Desc:  "You live for the moment! That's fun, but your future self might not agree. Time to build some money habits that let you enjoy NOW while securing LATER.",
		Tip:   "Start with one small step: save ₱100 every time you earn from content.",
	},
	TypeChill: {
		Title: "The Chill Saver",
		Emoji: "😎",
		Color: "#FFB86C",
		Desc:  "You have basic money awareness but no real system. You're halfway there! A little structure will take you from 'okay' to 'thriving.'",
		Tip:   "Try the 50/30/20 rule this month. Use the Budget tab!",
	},
	TypePlan: {
		Title: "The Planner",
		Emoji: "📋",
		Color: "#6C9CFF",
		Desc:  "You think ahead and make smart choices. You're already ahead of most people your age. Now level up to automate and optimize.",
		Tip:   "Explore compound interest in the Insights tab and see how your savings multiply!",
	},
	TypeMaster: {
		Title: "The Money Master",
		Emoji: "👑",
		Color: "#50E3C2",
		Desc:  "You're financially savvy! You track, plan, and protect your money like a pro. Keep going and help your friends level up too.",
		Tip:   "Consider MP2, mutual funds, or digital banks with higher interest.",
	},
}

// Score tallies the answers and returns the majority personality. A tie
// resolves toward the more advanced type. The answer count must match
// the question count.
func Score(answers []Type) (Type, error) {
	if len(answers) != len(Questions) {
		return "", fmt.Errorf("expected %d answers, got %d", len(Questions), len(answers))
	}

	counts := make(map[Type]int)
	for i, a := range answers {
		if !a.Valid() {
			return "", fmt.Errorf("answer %d: unknown personality %q", i, a)
		}
		counts[a]++
	}

	var winner Type
	for t, n := range counts {
		if winner == "" || n > counts[winner] || (n == counts[winner] && typeRank[t] > typeRank[winner]) {
			winner = t
		}
	}
	return winner, nil
}
