package handler

import (
	"log/slog"
	"net/http"

	"github.com/bfbl/moneyglow/internal/ai"
	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/quiz"
	"github.com/bfbl/moneyglow/internal/store"
)

// QuizHandler serves the money-personality quiz and scores submissions.
type QuizHandler struct {
	users  *store.UserStore
	coach  *ai.Client
	gamify *gamification.Service
	logger *slog.Logger
}

func NewQuizHandler(users *store.UserStore, coach *ai.Client, gamify *gamification.Service, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		users:  users,
		coach:  coach,
		gamify: gamify,
		logger: logger.With("component", "quiz_handler"),
	}
}

func (h *QuizHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"questions": quiz.Questions,
		"results":   quiz.Results,
	})
}

// Submit accepts either raw answers to score server-side or an already
// scored result type. The AI challenge is generated once and stored with
// the result.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Result  quiz.Type   `json:"result"`
		Answers []quiz.Type `json:"answers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := req.Result
	if len(req.Answers) > 0 {
		scored, err := quiz.Score(req.Answers)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid answers")
			return
		}
		result = scored
	}
	if !result.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid quiz result")
		return
	}

	userID := auth.UserID(r.Context())
	user, err := h.users.GetByID(userID)
	if err != nil || user == nil {
		h.logger.Error("lookup user", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	challenge, err := h.coach.QuizChallenge(r.Context(), user, string(result))
	if err != nil {
		h.logger.Warn("generate quiz challenge", "user_id", userID, "error", err)
		challenge = ""
	}

	if err := h.users.SetQuizResult(userID, string(result), challenge); err != nil {
		h.logger.Error("store quiz result", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := h.gamify.AwardXP(userID, gamification.ActionCompleteQuiz); err != nil {
		h.logger.Warn("award quiz xp", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"result":    string(result),
		"challenge": challenge,
	})
}
