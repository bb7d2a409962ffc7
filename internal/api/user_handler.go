package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/twitter-persistence/internal/api/shared"
	"github.com/phrazzld/twitter-persistence/internal/domain"
	"github.com/phrazzld/twitter-persistence/internal/mapper"
	"github.com/phrazzld/twitter-persistence/internal/platform/logger"
)

// UserHandler serves Data Mapper users.
type UserHandler struct {
	users  *mapper.UserMapper
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *mapper.UserMapper, logger *slog.Logger) *UserHandler {
	if users == nil {
		panic("users cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /api/users requests
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.All(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userToResponse(u))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// TruncateUsers handles DELETE /api/users requests
func (h *UserHandler) TruncateUsers(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Truncate(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to delete users")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PersistUser handles PUT /api/users/{username} requests.
// Repeated calls for one username update the stored name.
func (h *UserHandler) PersistUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	username, err := getUsernameParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req PersistUserRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user := domain.NewUser(req.Name, username, nil)
	if err := h.users.Persist(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("user persisted", slog.String("username", username))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetUser handles GET /api/users/{username} requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username, err := getUsernameParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// PostTweet handles POST /api/users/{username}/tweets requests.
// The tweet is built by the stored user and returned, not kept.
func (h *UserHandler) PostTweet(w http.ResponseWriter, r *http.Request) {
	username, err := getUsernameParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TweetRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tweet, err := user.Tweet(req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compose tweet")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tweetToResponse(tweet))
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{Username: u.Username, Name: u.Name}
}

// tweetToResponse reads back a *domain.Post; other Tweet implementations
// only expose setters.
func tweetToResponse(t domain.Tweet) TweetResponse {
	post, ok := t.(*domain.Post)
	if !ok || post.User == nil {
		return TweetResponse{}
	}
	return TweetResponse{Username: post.User.Handle(), Content: post.Content}
}
