// Package finance holds the pure money calculators: the 50/30/20 budget
// split, the TRAIN-law tax estimator for self-employed creators, and
// compound interest projections.
package finance

import "math"

// BudgetSplit divides an income 50/30/20 into needs, wants, and savings.
type BudgetSplit struct {
	Income  float64 `json:"income"`
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// Split applies the 50/30/20 rule exactly.
func Split(income float64) BudgetSplit {
	return BudgetSplit{
		Income:  income,
		Needs:   income * 0.5,
		Wants:   income * 0.3,
		Savings: income * 0.2,
	}
}

// SplitRounded applies the rule with whole-peso amounts. Needs and wants
// round to the nearest peso; savings takes the remainder so the parts
// always sum to the income.
func SplitRounded(income float64) BudgetSplit {
	needs := math.Round(income * 0.5)
	wants := math.Round(income * 0.3)
	return BudgetSplit{
		Income:  income,
		Needs:   needs,
		Wants:   wants,
		Savings: income - needs - wants,
	}
}
