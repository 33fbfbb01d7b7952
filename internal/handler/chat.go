package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bfbl/moneyglow/internal/ai"
	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/model"
	"github.com/bfbl/moneyglow/internal/store"
)

const (
	chatHistoryWindow = 20
	chatMaxLength     = 2000
)

// ChatHandler runs the money-coach conversation. Only the most recent
// window of messages is kept per user; older rows are pruned after each
// exchange.
type ChatHandler struct {
	chats  *store.ChatStore
	users  *store.UserStore
	coach  *ai.Client
	logger *slog.Logger
}

func NewChatHandler(chats *store.ChatStore, users *store.UserStore, coach *ai.Client, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chats:  chats,
		users:  users,
		coach:  coach,
		logger: logger.With("component", "chat_handler"),
	}
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chats.ListRecent(auth.UserID(r.Context()), chatHistoryWindow)
	if err != nil {
		h.logger.Error("list chat history", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "Message required")
		return
	}
	if len(message) > chatMaxLength {
		writeError(w, http.StatusBadRequest, "Message too long")
		return
	}

	userID := auth.UserID(r.Context())
	user, err := h.users.GetByID(userID)
	if err != nil || user == nil {
		h.logger.Error("lookup user", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// History is read before the new message is stored so the prompt
	// carries it exactly once, as the explicit user turn.
	history, err := h.chats.ListRecent(userID, chatHistoryWindow)
	if err != nil {
		h.logger.Error("list chat history", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := h.chats.Create(userID, model.RoleUser, message); err != nil {
		h.logger.Error("store user message", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	reply, err := h.coach.Chat(r.Context(), user, history, message)
	if err != nil {
		h.logger.Error("generate chat reply", "user_id", userID, "error", err)
		writeError(w, http.StatusBadGateway, "The coach is unavailable right now")
		return
	}

	if _, err := h.chats.Create(userID, model.RoleAssistant, reply); err != nil {
		h.logger.Error("store assistant message", "user_id", userID, "error", err)
	}
	if err := h.chats.Prune(userID, chatHistoryWindow); err != nil {
		h.logger.Warn("prune chat history", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": reply})
}
