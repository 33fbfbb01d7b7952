package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/email"
	"github.com/bfbl/moneyglow/internal/session"
	"github.com/bfbl/moneyglow/internal/store"
)

// AuthHandler runs the passwordless login flow: it mints magic links,
// mails them out, and exchanges a valid link for a session cookie.
type AuthHandler struct {
	users         *store.UserStore
	links         *store.MagicLinkStore
	email         *email.Client
	codec         *session.Codec
	secureCookies bool
	logger        *slog.Logger
}

func NewAuthHandler(users *store.UserStore, links *store.MagicLinkStore, emailClient *email.Client, codec *session.Codec, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:         users,
		links:         links,
		email:         emailClient,
		codec:         codec,
		secureCookies: secureCookies,
		logger:        logger.With("component", "auth_handler"),
	}
}

// SendMagicLink finds or creates the user for the submitted email and
// sends them a fresh single-use login link. The response never reveals
// whether the address was already registered.
func (h *AuthHandler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	addr := strings.ToLower(strings.TrimSpace(req.Email))
	if addr == "" || !strings.Contains(addr, "@") {
		writeError(w, http.StatusBadRequest, "Valid email required")
		return
	}

	user, err := h.users.GetByEmail(addr)
	if err != nil {
		h.logger.Error("lookup user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		user, err = h.users.Create(addr)
		if err != nil {
			h.logger.Error("create user", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		h.logger.Info("new user registered", "user_id", user.ID)
	}

	link, err := h.links.Create(user.ID)
	if err != nil {
		h.logger.Error("create magic link", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.email.SendMagicLink(r.Context(), addr, link.Token); err != nil {
		h.logger.Error("send magic link", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Magic link sent"})
}

// Verify exchanges a magic link token for a session cookie. Each failure
// mode gets its own message so the login page can explain what happened.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Token required")
		return
	}

	link, err := h.links.GetByToken(token)
	if err != nil {
		h.logger.Error("lookup magic link", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if link == nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired link")
		return
	}
	if link.UsedAt != nil {
		writeError(w, http.StatusBadRequest, "This link has already been used")
		return
	}
	if time.Now().After(link.ExpiresAt) {
		writeError(w, http.StatusBadRequest, "This link has expired")
		return
	}

	// Consume is conditional on the link still being unused, so a
	// concurrent double-submit loses here even after the checks above.
	ok, err := h.links.Consume(link.ID)
	if err != nil {
		h.logger.Error("consume magic link", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "This link has already been used")
		return
	}

	user, err := h.users.GetByID(link.UserID)
	if err != nil || user == nil {
		h.logger.Error("lookup user for link", "user_id", link.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sessionToken, err := h.codec.Create(user.ID, user.Email)
	if err != nil {
		h.logger.Error("create session", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	session.SetCookie(w, sessionToken, h.secureCookies)

	redirectTo := "/onboarding"
	if user.Onboarded {
		redirectTo = "/dashboard"
	}
	h.logger.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]string{"redirectTo": redirectTo})
}

// Me returns the authenticated user's full profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("lookup user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, h.secureCookies)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
