package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bfbl/moneyglow/internal/model"
)

// Magic links expire 15 minutes after issuance.
const magicLinkTTL = 15 * time.Minute

type MagicLinkStore struct {
	db *sql.DB
}

func NewMagicLinkStore(db *sql.DB) *MagicLinkStore {
	return &MagicLinkStore{db: db}
}

const magicLinkCols = `id, token, user_id, expires_at, used_at, created_at`

func scanMagicLink(scanner interface{ Scan(...any) error }) (*model.MagicLink, error) {
	var ml model.MagicLink
	var usedAt sql.NullTime

	err := scanner.Scan(&ml.ID, &ml.Token, &ml.UserID, &ml.ExpiresAt, &usedAt, &ml.CreatedAt)
	if err != nil {
		return nil, err
	}

	if usedAt.Valid {
		ml.UsedAt = &usedAt.Time
	}
	return &ml, nil
}

// Create issues a fresh single-use link for the user with a random token.
func (s *MagicLinkStore) Create(userID int64) (*model.MagicLink, error) {
	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(magicLinkTTL)

	result, err := s.db.Exec(
		`INSERT INTO magic_links (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert magic link: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+magicLinkCols+` FROM magic_links WHERE id = ?`, id)
	return scanMagicLink(row)
}

// GetByToken returns the link for a token regardless of its expiry or used
// state, or nil if no such token exists. Callers decide which rejection to
// surface.
func (s *MagicLinkStore) GetByToken(token string) (*model.MagicLink, error) {
	row := s.db.QueryRow(`SELECT `+magicLinkCols+` FROM magic_links WHERE token = ?`, token)
	ml, err := scanMagicLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get magic link by token: %w", err)
	}
	return ml, nil
}

// Consume marks the link used if and only if it is still unused. The
// returned bool is the sole arbiter between concurrent verifications:
// exactly one caller sees true, every other sees false.
func (s *MagicLinkStore) Consume(id int64) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE magic_links SET used_at = datetime('now') WHERE id = ? AND used_at IS NULL`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("consume magic link: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// DeleteExpired removes links whose expiry has passed. Consumed links are
// covered too, since every link expires 15 minutes after issuance.
func (s *MagicLinkStore) DeleteExpired(now time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM magic_links WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired magic links: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
