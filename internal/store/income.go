package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bfbl/moneyglow/internal/model"
)

type IncomeStore struct {
	db *sql.DB
}

func NewIncomeStore(db *sql.DB) *IncomeStore {
	return &IncomeStore{db: db}
}

const incomeCols = `id, user_id, source, type, amount, date, note, created_at`

func scanIncomeEntry(scanner interface{ Scan(...any) error }) (*model.IncomeEntry, error) {
	var e model.IncomeEntry
	var note sql.NullString

	err := scanner.Scan(&e.ID, &e.UserID, &e.Source, &e.Type, &e.Amount, &e.Date, &note, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if note.Valid {
		e.Note = &note.String
	}
	return &e, nil
}

func (s *IncomeStore) Create(userID int64, source, entryType string, amount float64, date time.Time, note *string) (*model.IncomeEntry, error) {
	result, err := s.db.Exec(
		`INSERT INTO income_entries (user_id, source, type, amount, date, note) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, source, entryType, amount, date.UTC(), note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert income entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+incomeCols+` FROM income_entries WHERE id = ?`, id)
	return scanIncomeEntry(row)
}

func (s *IncomeStore) GetByID(id int64) (*model.IncomeEntry, error) {
	row := s.db.QueryRow(`SELECT `+incomeCols+` FROM income_entries WHERE id = ?`, id)
	e, err := scanIncomeEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get income entry: %w", err)
	}
	return e, nil
}

// ListByUser returns the user's most recent entries by date, newest first.
func (s *IncomeStore) ListByUser(userID int64, limit int) ([]*model.IncomeEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+incomeCols+` FROM income_entries WHERE user_id = ? ORDER BY date DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list income entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.IncomeEntry
	for rows.Next() {
		e, err := scanIncomeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *IncomeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM income_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income entry: %w", err)
	}
	return nil
}

func (s *IncomeStore) CountByUser(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM income_entries WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count income entries: %w", err)
	}
	return n, nil
}

// CountCreatedSince counts entries logged at or after the cutoff,
// by creation time rather than the entry's own date.
func (s *IncomeStore) CountCreatedSince(userID int64, cutoff time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM income_entries WHERE user_id = ? AND created_at >= ?`,
		userID, cutoff.UTC(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count recent income entries: %w", err)
	}
	return n, nil
}

// SumInRange totals entry amounts dated in [start, end).
func (s *IncomeStore) SumInRange(userID int64, start, end time.Time) (float64, error) {
	var sum sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT SUM(amount) FROM income_entries WHERE user_id = ? AND date >= ? AND date < ?`,
		userID, start.UTC(), end.UTC(),
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum income entries: %w", err)
	}
	return sum.Float64, nil
}

// SumAll totals every income entry across all users.
func (s *IncomeStore) SumAll() (float64, error) {
	var sum sql.NullFloat64
	if err := s.db.QueryRow(`SELECT SUM(amount) FROM income_entries`).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum all income: %w", err)
	}
	return sum.Float64, nil
}
