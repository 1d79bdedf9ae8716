package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"filmrate/internal/domain"
	"filmrate/internal/service"
)

// UserHandler holds the dependencies for the user and friends endpoints.
type UserHandler struct {
	users    *service.UserService
	logger   *slog.Logger
	validate *validator.Validate
}

func NewUserHandler(users *service.UserService, logger *slog.Logger, validate *validator.Validate) *UserHandler {
	return &UserHandler{users: users, logger: logger, validate: validate}
}

func (h *UserHandler) decodeUser(w http.ResponseWriter, r *http.Request) (*domain.UserPayload, bool) {
	var payload domain.UserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode user payload", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(r.Context(), payload); err != nil {
		h.logger.WarnContext(r.Context(), "User payload validation failed", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "validation failed: "+err.Error())
		return nil, false
	}
	return &payload, true
}

func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeUser(w, r)
	if !ok {
		return
	}
	user, err := h.users.AddUser(r.Context(), payload.User())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeUser(w, r)
	if !ok {
		return
	}
	user, err := h.users.UpdateUser(r.Context(), payload.User())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, user)
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Users(r.Context())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	user, err := h.users.User(r.Context(), userID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, user)
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.friendPairIDs(w, r)
	if !ok {
		return
	}
	user, err := h.users.AddFriend(r.Context(), userID, friendID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, user)
}

func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.friendPairIDs(w, r)
	if !ok {
		return
	}
	user, err := h.users.RemoveFriend(r.Context(), userID, friendID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, user)
}

func (h *UserHandler) ApproveFriend(w http.ResponseWriter, r *http.Request) {
	fromID, toID, ok := h.friendPairIDs(w, r)
	if !ok {
		return
	}
	if err := h.users.ApproveFriend(r.Context(), fromID, toID); err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, map[string]string{"message": "friend request approved"})
}

func (h *UserHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	friends, err := h.users.UserFriends(r.Context(), userID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, friends)
}

func (h *UserHandler) GetCommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	otherID, err := pathID(r, "otherId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	common, err := h.users.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, common)
}

func (h *UserHandler) friendPairIDs(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return 0, 0, false
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return 0, 0, false
	}
	return userID, friendID, true
}
