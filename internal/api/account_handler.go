package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/twitter-persistence/internal/activerecord"
	"github.com/phrazzld/twitter-persistence/internal/api/shared"
	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
)

// AccountHandler serves Active Record users.
type AccountHandler struct {
	model  *activerecord.Model
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(model *activerecord.Model, logger *slog.Logger) *AccountHandler {
	if model == nil {
		panic("model cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		model:  model,
		logger: logger.With(slog.String("component", "account_handler")),
	}
}

// ListAccounts handles GET /api/accounts requests
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	users, err := h.model.All(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]AccountResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, accountToResponse(u))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateAccount handles POST /api/accounts requests.
// Every call inserts a new record, even for a username already stored.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateAccountRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	u := h.model.Build(req.Username)
	if err := u.Save(r.Context()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("account created", slog.Int64("id", u.ID()), slog.String("username", u.Username))
	shared.RespondWithJSON(w, r, http.StatusCreated, accountToResponse(u))
}

// TruncateAccounts handles DELETE /api/accounts requests
func (h *AccountHandler) TruncateAccounts(w http.ResponseWriter, r *http.Request) {
	if err := h.model.Truncate(r.Context()); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAccount handles GET /api/accounts/{username} requests
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	username, err := getUsernameParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	u, err := h.model.FindByUsername(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(u))
}

func accountToResponse(u *activerecord.User) AccountResponse {
	return AccountResponse{ID: u.ID(), Username: u.Username}
}
