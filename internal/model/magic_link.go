package model

import "time"

// MagicLink is a single-use login credential emailed to a user.
// A link grants a session at most once: UsedAt is set by a conditional
// update, and a link past ExpiresAt never grants a session at all.
type MagicLink struct {
	ID        int64      `json:"id"`
	Token     string     `json:"token"`
	UserID    int64      `json:"user_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}
