package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bfbl/moneyglow/internal/model"
)

type BudgetStore struct {
	db *sql.DB
}

func NewBudgetStore(db *sql.DB) *BudgetStore {
	return &BudgetStore{db: db}
}

const snapshotCols = `id, user_id, income, needs, wants, savings, created_at`

func scanSnapshot(scanner interface{ Scan(...any) error }) (*model.BudgetSnapshot, error) {
	var b model.BudgetSnapshot
	err := scanner.Scan(&b.ID, &b.UserID, &b.Income, &b.Needs, &b.Wants, &b.Savings, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BudgetStore) CreateSnapshot(userID int64, income, needs, wants, savings float64) (*model.BudgetSnapshot, error) {
	result, err := s.db.Exec(
		`INSERT INTO budget_snapshots (user_id, income, needs, wants, savings) VALUES (?, ?, ?, ?, ?)`,
		userID, income, needs, wants, savings,
	)
	if err != nil {
		return nil, fmt.Errorf("insert budget snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+snapshotCols+` FROM budget_snapshots WHERE id = ?`, id)
	return scanSnapshot(row)
}

func (s *BudgetStore) ListSnapshots(userID int64, limit int) ([]*model.BudgetSnapshot, error) {
	rows, err := s.db.Query(
		`SELECT `+snapshotCols+` FROM budget_snapshots WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list budget snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*model.BudgetSnapshot
	for rows.Next() {
		b, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget snapshot: %w", err)
		}
		snapshots = append(snapshots, b)
	}
	return snapshots, rows.Err()
}

// CountSnapshotsSince counts snapshot saves at or after the cutoff.
func (s *BudgetStore) CountSnapshotsSince(userID int64, cutoff time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM budget_snapshots WHERE user_id = ? AND created_at >= ?`,
		userID, cutoff.UTC(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count recent budget snapshots: %w", err)
	}
	return n, nil
}

const monthlyCols = `id, user_id, month, year, income, needs, wants, savings, created_at, updated_at`

func scanMonthlyBudget(scanner interface{ Scan(...any) error }) (*model.MonthlyBudget, error) {
	var b model.MonthlyBudget
	err := scanner.Scan(&b.ID, &b.UserID, &b.Month, &b.Year, &b.Income, &b.Needs, &b.Wants, &b.Savings, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpsertMonthly creates or replaces the single budget for user+month+year.
func (s *BudgetStore) UpsertMonthly(userID int64, month, year int, income, needs, wants, savings float64) (*model.MonthlyBudget, error) {
	_, err := s.db.Exec(
		`INSERT INTO monthly_budgets (user_id, month, year, income, needs, wants, savings)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, month, year) DO UPDATE SET
			income = excluded.income, needs = excluded.needs,
			wants = excluded.wants, savings = excluded.savings,
			updated_at = datetime('now')`,
		userID, month, year, income, needs, wants, savings,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert monthly budget: %w", err)
	}
	return s.GetMonthly(userID, month, year)
}

func (s *BudgetStore) GetMonthly(userID int64, month, year int) (*model.MonthlyBudget, error) {
	row := s.db.QueryRow(
		`SELECT `+monthlyCols+` FROM monthly_budgets WHERE user_id = ? AND month = ? AND year = ?`,
		userID, month, year,
	)
	b, err := scanMonthlyBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get monthly budget: %w", err)
	}
	return b, nil
}

func (s *BudgetStore) CountMonthlyByUser(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM monthly_budgets WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count monthly budgets: %w", err)
	}
	return n, nil
}

func (s *BudgetStore) CountMonthlyAll() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM monthly_budgets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count all monthly budgets: %w", err)
	}
	return n, nil
}
