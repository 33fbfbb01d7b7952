package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/gamification"
	"github.com/bfbl/moneyglow/internal/store"
)

const incomeListLimit = 100

// IncomeHandler covers the income log. Every logged entry feeds the
// gamification loop.
type IncomeHandler struct {
	incomes *store.IncomeStore
	gamify  *gamification.Service
	logger  *slog.Logger
}

func NewIncomeHandler(incomes *store.IncomeStore, gamify *gamification.Service, logger *slog.Logger) *IncomeHandler {
	return &IncomeHandler{
		incomes: incomes,
		gamify:  gamify,
		logger:  logger.With("component", "income_handler"),
	}
}

func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.incomes.ListByUser(auth.UserID(r.Context()), incomeListLimit)
	if err != nil {
		h.logger.Error("list income", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string  `json:"source"`
		Type   string  `json:"type"`
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
		Note   *string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		writeError(w, http.StatusBadRequest, "Source required")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	userID := auth.UserID(r.Context())
	entry, err := h.incomes.Create(userID, req.Source, req.Type, req.Amount, date, req.Note)
	if err != nil {
		h.logger.Error("create income entry", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := h.gamify.AwardXP(userID, gamification.ActionLogIncome); err != nil {
		h.logger.Warn("award income xp", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

// Delete removes one of the caller's own entries. A foreign ID gets the
// same 404 as a missing one.
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Valid id required")
		return
	}

	entry, err := h.incomes.GetByID(id)
	if err != nil {
		h.logger.Error("lookup income entry", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if entry == nil || entry.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	if err := h.incomes.Delete(id); err != nil {
		h.logger.Error("delete income entry", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
