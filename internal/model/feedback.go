package model

import "time"

// Feedback is a thumbs-up/down rating (-1, 0, 1) with optional context
// about where in the app it was given.
type Feedback struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"`
	Reason    *string   `json:"reason"`
	Context   *string   `json:"context"`
	Page      *string   `json:"page"`
	CreatedAt time.Time `json:"createdAt"`
}
