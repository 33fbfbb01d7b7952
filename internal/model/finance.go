package model

import "time"

// Expense categories follow the 50/30/20 rule.
const (
	CategoryNeeds   = "NEEDS"
	CategoryWants   = "WANTS"
	CategorySavings = "SAVINGS"
)

type IncomeEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Source    string    `json:"source"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BudgetSnapshot is a point-in-time 50/30/20 split saved from the quick
// budget calculator.
type BudgetSnapshot struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Income    float64   `json:"income"`
	Needs     float64   `json:"needs"`
	Wants     float64   `json:"wants"`
	Savings   float64   `json:"savings"`
	CreatedAt time.Time `json:"createdAt"`
}

// MonthlyBudget is the single budget for a user+month+year, upserted on save.
type MonthlyBudget struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Income    float64   `json:"income"`
	Needs     float64   `json:"needs"`
	Wants     float64   `json:"wants"`
	Savings   float64   `json:"savings"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
