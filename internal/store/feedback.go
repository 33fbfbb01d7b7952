package store

import (
	"database/sql"
	"fmt"

	"github.com/bfbl/moneyglow/internal/model"
)

type FeedbackStore struct {
	db *sql.DB
}

func NewFeedbackStore(db *sql.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// FeedbackEntry pairs a feedback row with the submitter's email for the
// admin listing.
type FeedbackEntry struct {
	model.Feedback
	Email string `json:"email"`
}

func (s *FeedbackStore) Create(userID int64, rating int, reason, context, page *string) (*model.Feedback, error) {
	result, err := s.db.Exec(
		`INSERT INTO feedback (user_id, rating, reason, context, page) VALUES (?, ?, ?, ?, ?)`,
		userID, rating, reason, context, page,
	)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(
		`SELECT id, user_id, rating, reason, context, page, created_at FROM feedback WHERE id = ?`, id,
	)
	var f model.Feedback
	var reasonCol, contextCol, pageCol sql.NullString
	if err := row.Scan(&f.ID, &f.UserID, &f.Rating, &reasonCol, &contextCol, &pageCol, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	if reasonCol.Valid {
		f.Reason = &reasonCol.String
	}
	if contextCol.Valid {
		f.Context = &contextCol.String
	}
	if pageCol.Valid {
		f.Page = &pageCol.String
	}
	return &f, nil
}

// List returns a page of feedback rows joined with submitter emails,
// newest first, along with the total row count.
func (s *FeedbackStore) List(page, limit int) ([]*FeedbackEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT f.id, f.user_id, f.rating, f.reason, f.context, f.page, f.created_at, u.email
		FROM feedback f JOIN users u ON u.id = f.user_id
		ORDER BY f.created_at DESC LIMIT ? OFFSET ?`,
		limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var entries []*FeedbackEntry
	for rows.Next() {
		var e FeedbackEntry
		var reason, context, page sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Rating, &reason, &context, &page, &e.CreatedAt, &e.Email); err != nil {
			return nil, 0, fmt.Errorf("scan feedback: %w", err)
		}
		if reason.Valid {
			e.Reason = &reason.String
		}
		if context.Valid {
			e.Context = &context.String
		}
		if page.Valid {
			e.Page = &page.String
		}
		entries = append(entries, &e)
	}
	return entries, total, rows.Err()
}

// RatingStats counts feedback rows by sentiment.
type RatingStats struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (s *FeedbackStore) Stats() (RatingStats, error) {
	rows, err := s.db.Query(`SELECT rating, COUNT(*) FROM feedback GROUP BY rating`)
	if err != nil {
		return RatingStats{}, fmt.Errorf("feedback stats: %w", err)
	}
	defer rows.Close()

	var stats RatingStats
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return RatingStats{}, fmt.Errorf("scan feedback stats: %w", err)
		}
		switch {
		case rating > 0:
			stats.Positive = count
		case rating < 0:
			stats.Negative = count
		default:
			stats.Neutral = count
		}
	}
	return stats, rows.Err()
}
