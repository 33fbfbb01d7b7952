package store

import (
	"database/sql"
	"fmt"

	"github.com/bfbl/moneyglow/internal/model"
)

type ChatStore struct {
	db *sql.DB
}

func NewChatStore(db *sql.DB) *ChatStore {
	return &ChatStore{db: db}
}

const chatCols = `id, user_id, role, content, created_at`

func scanChatMessage(scanner interface{ Scan(...any) error }) (*model.ChatMessage, error) {
	var m model.ChatMessage
	err := scanner.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ChatStore) Create(userID int64, role, content string) (*model.ChatMessage, error) {
	result, err := s.db.Exec(
		`INSERT INTO chat_messages (user_id, role, content) VALUES (?, ?, ?)`,
		userID, role, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+chatCols+` FROM chat_messages WHERE id = ?`, id)
	return scanChatMessage(row)
}

// ListRecent returns the user's latest n messages in chronological order.
func (s *ChatStore) ListRecent(userID int64, n int) ([]*model.ChatMessage, error) {
	rows, err := s.db.Query(
		`SELECT `+chatCols+` FROM chat_messages WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.ChatMessage
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse: query fetched newest-first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Prune deletes all but the user's newest keep messages.
func (s *ChatStore) Prune(userID int64, keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM chat_messages WHERE user_id = ? AND id NOT IN (
			SELECT id FROM chat_messages WHERE user_id = ? ORDER BY id DESC LIMIT ?
		)`,
		userID, userID, keep,
	)
	if err != nil {
		return fmt.Errorf("prune chat messages: %w", err)
	}
	return nil
}

func (s *ChatStore) CountByUser(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM chat_messages WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chat messages: %w", err)
	}
	return n, nil
}
