package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bfbl/moneyglow/internal/model"
)

type ExpenseStore struct {
	db *sql.DB
}

func NewExpenseStore(db *sql.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

const expenseCols = `id, user_id, category, subcategory, amount, date, note, created_at`

func scanExpense(scanner interface{ Scan(...any) error }) (*model.Expense, error) {
	var e model.Expense
	var note sql.NullString

	err := scanner.Scan(&e.ID, &e.UserID, &e.Category, &e.Subcategory, &e.Amount, &e.Date, &note, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if note.Valid {
		e.Note = &note.String
	}
	return &e, nil
}

func (s *ExpenseStore) Create(userID int64, category, subcategory string, amount float64, date time.Time, note *string) (*model.Expense, error) {
	result, err := s.db.Exec(
		`INSERT INTO expenses (user_id, category, subcategory, amount, date, note) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, category, subcategory, amount, date.UTC(), note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+expenseCols+` FROM expenses WHERE id = ?`, id)
	return scanExpense(row)
}

func (s *ExpenseStore) GetByID(id int64) (*model.Expense, error) {
	row := s.db.QueryRow(`SELECT `+expenseCols+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListInRange returns the user's expenses dated in [start, end), newest first.
func (s *ExpenseStore) ListInRange(userID int64, start, end time.Time) ([]*model.Expense, error) {
	rows, err := s.db.Query(
		`SELECT `+expenseCols+` FROM expenses WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date DESC`,
		userID, start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *ExpenseStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *ExpenseStore) CountByUser(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM expenses WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// SumByCategoryInRange totals spending per category for expenses dated in
// [start, end). Categories with no spending are absent from the map.
func (s *ExpenseStore) SumByCategoryInRange(userID int64, start, end time.Time) (map[string]float64, error) {
	rows, err := s.db.Query(
		`SELECT category, SUM(amount) FROM expenses WHERE user_id = ? AND date >= ? AND date < ? GROUP BY category`,
		userID, start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var category string
		var sum float64
		if err := rows.Scan(&category, &sum); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		sums[category] = sum
	}
	return sums, rows.Err()
}

// SumInRange totals expense amounts dated in [start, end).
func (s *ExpenseStore) SumInRange(userID int64, start, end time.Time) (float64, error) {
	var sum sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT SUM(amount) FROM expenses WHERE user_id = ? AND date >= ? AND date < ?`,
		userID, start.UTC(), end.UTC(),
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return sum.Float64, nil
}

// SumAll totals every expense across all users.
func (s *ExpenseStore) SumAll() (float64, error) {
	var sum sql.NullFloat64
	if err := s.db.QueryRow(`SELECT SUM(amount) FROM expenses`).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum all expenses: %w", err)
	}
	return sum.Float64, nil
}
