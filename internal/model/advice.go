package model

import "time"

// DailyAdvice caches one generated tip per user per calendar day.
type DailyAdvice struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Chat message roles.
const (
	RoleUser      = "USER"
	RoleAssistant = "ASSISTANT"
)

type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
