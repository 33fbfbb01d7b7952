package model

import "time"

// Language preferences for AI-generated content.
const (
	LangEnglish = "ENGLISH"
	LangTaglish = "TAGLISH"
)

// User owns every other entity by foreign key. The gamification block
// (XP, Level, StreakCount, LongestStreak, LastCheckIn) is only ever
// mutated through the gamification service.
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             *string    `json:"name"`
	Age              *int       `json:"age"`
	IncomeSources    []string   `json:"incomeSources"`
	MonthlyIncome    *float64   `json:"monthlyIncome"`
	FinancialGoal    *string    `json:"financialGoal"`
	EmploymentStatus *string    `json:"employmentStatus"`
	HasEmergencyFund *string    `json:"hasEmergencyFund"`
	DebtSituation    *string    `json:"debtSituation"`
	LanguagePref     string     `json:"languagePref"`
	QuizResult       *string    `json:"quizResult"`
	QuizChallenge    *string    `json:"quizChallenge"`
	Onboarded        bool       `json:"onboarded"`
	IsAdmin          bool       `json:"isAdmin"`
	XP               int        `json:"xp"`
	Level            int        `json:"level"`
	StreakCount      int        `json:"streakCount"`
	LongestStreak    int        `json:"longestStreak"`
	LastCheckIn      *time.Time `json:"lastCheckIn"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
