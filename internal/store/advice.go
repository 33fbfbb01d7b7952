package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bfbl/moneyglow/internal/model"
)

type AdviceStore struct {
	db *sql.DB
}

func NewAdviceStore(db *sql.DB) *AdviceStore {
	return &AdviceStore{db: db}
}

const adviceCols = `id, user_id, content, date, created_at`

func scanAdvice(scanner interface{ Scan(...any) error }) (*model.DailyAdvice, error) {
	var a model.DailyAdvice
	err := scanner.Scan(&a.ID, &a.UserID, &a.Content, &a.Date, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// dayKey normalizes a timestamp to its UTC calendar day, the advice
// cache key.
func dayKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetForDay returns the cached advice for the calendar day of t, or nil.
func (s *AdviceStore) GetForDay(userID int64, t time.Time) (*model.DailyAdvice, error) {
	row := s.db.QueryRow(
		`SELECT `+adviceCols+` FROM daily_advice WHERE user_id = ? AND date = ?`,
		userID, dayKey(t),
	)
	a, err := scanAdvice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily advice: %w", err)
	}
	return a, nil
}

func (s *AdviceStore) Create(userID int64, content string, t time.Time) (*model.DailyAdvice, error) {
	result, err := s.db.Exec(
		`INSERT INTO daily_advice (user_id, content, date) VALUES (?, ?, ?)`,
		userID, content, dayKey(t),
	)
	if err != nil {
		return nil, fmt.Errorf("insert daily advice: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+adviceCols+` FROM daily_advice WHERE id = ?`, id)
	return scanAdvice(row)
}

func (s *AdviceStore) CountByUser(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_advice WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count daily advice: %w", err)
	}
	return n, nil
}
