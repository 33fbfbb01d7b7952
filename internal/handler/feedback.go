package handler

import (
	"log/slog"
	"net/http"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/store"
)

// FeedbackHandler records in-app sentiment: -1, 0, or +1 with optional
// free-text context.
type FeedbackHandler struct {
	feedback *store.FeedbackStore
	logger   *slog.Logger
}

func NewFeedbackHandler(feedback *store.FeedbackStore, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		logger:   logger.With("component", "feedback_handler"),
	}
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  int     `json:"rating"`
		Reason  *string `json:"reason"`
		Context *string `json:"context"`
		Page    *string `json:"page"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Rating < -1 || req.Rating > 1 {
		writeError(w, http.StatusBadRequest, "Rating must be -1, 0, or 1")
		return
	}

	userID := auth.UserID(r.Context())
	if _, err := h.feedback.Create(userID, req.Rating, req.Reason, req.Context, req.Page); err != nil {
		h.logger.Error("store feedback", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback saved"})
}
