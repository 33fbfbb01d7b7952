package handler

import (
	"log/slog"
	"net/http"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/email"
	"github.com/bfbl/moneyglow/internal/store"
)

// ProfileHandler serves the user's own profile and the onboarding flow.
type ProfileHandler struct {
	users  *store.UserStore
	email  *email.Client
	logger *slog.Logger
}

func NewProfileHandler(users *store.UserStore, emailClient *email.Client, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		users:  users,
		email:  emailClient,
		logger: logger.With("component", "profile_handler"),
	}
}

type profileRequest struct {
	Name             *string  `json:"name"`
	Age              *int     `json:"age"`
	IncomeSources    []string `json:"incomeSources"`
	MonthlyIncome    *float64 `json:"monthlyIncome"`
	FinancialGoal    *string  `json:"financialGoal"`
	EmploymentStatus *string  `json:"employmentStatus"`
	HasEmergencyFund *string  `json:"hasEmergencyFund"`
	DebtSituation    *string  `json:"debtSituation"`
	LanguagePref     *string  `json:"languagePref"`
}

func (req profileRequest) toUpdate() store.ProfileUpdate {
	return store.ProfileUpdate{
		Name:             req.Name,
		Age:              req.Age,
		IncomeSources:    req.IncomeSources,
		MonthlyIncome:    req.MonthlyIncome,
		FinancialGoal:    req.FinancialGoal,
		EmploymentStatus: req.EmploymentStatus,
		HasEmergencyFund: req.HasEmergencyFund,
		DebtSituation:    req.DebtSituation,
		LanguagePref:     req.LanguagePref,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Update merges the submitted fields into the profile. Omitted fields
// keep their stored values.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Age != nil && (*req.Age < 13 || *req.Age > 120) {
		writeError(w, http.StatusBadRequest, "Invalid age")
		return
	}

	user, err := h.users.UpdateProfile(auth.UserID(r.Context()), req.toUpdate())
	if err != nil {
		h.logger.Error("update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CompleteOnboarding saves the intake answers, marks the user onboarded,
// and sends the welcome email. The email is best effort; a mail outage
// must not block the signup.
func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := auth.UserID(r.Context())
	user, err := h.users.CompleteOnboarding(userID, req.toUpdate())
	if err != nil {
		h.logger.Error("complete onboarding", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	if err := h.email.SendWelcome(r.Context(), user.Email, name); err != nil {
		h.logger.Warn("send welcome email", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Onboarding complete"})
}
