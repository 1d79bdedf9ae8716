package service

import (
	"context"
	"log/slog"

	"filmrate/internal/domain"
	"filmrate/internal/store"
)

// UserService wraps the user store with the friend-request semantics: the
// asymmetric request/approve state machine and mutual-friend computation.
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

func NewUserService(users store.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Name == "" {
		user.Name = user.Login
	}
	s.logger.InfoContext(ctx, "Adding user", slog.String("login", user.Login))
	return s.users.AddUser(ctx, user)
}

func (s *UserService) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Name == "" {
		user.Name = user.Login
	}
	s.logger.InfoContext(ctx, "Updating user", slog.Int("userID", user.ID))
	return s.users.UpdateUser(ctx, user)
}

func (s *UserService) User(ctx context.Context, userID int) (*domain.User, error) {
	return s.users.User(ctx, userID)
}

func (s *UserService) Users(ctx context.Context) ([]*domain.User, error) {
	return s.users.Users(ctx)
}

// AddFriend files a friend request from userID to friendID. The requester
// sees the target in their friend list immediately; the reverse direction
// waits for approval.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) (*domain.User, error) {
	if userID == friendID {
		return nil, incorrectParameter("friendId")
	}
	if _, err := s.users.User(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.users.User(ctx, friendID); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Adding friend request", slog.Int("userID", userID), slog.Int("friendID", friendID))
	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		return nil, err
	}
	return s.users.User(ctx, userID)
}

// ApproveFriend confirms the pending request from fromID to toID, making the
// friendship visible from both sides.
func (s *UserService) ApproveFriend(ctx context.Context, fromID, toID int) error {
	if fromID == toID {
		return incorrectParameter("friendId")
	}
	if _, err := s.users.User(ctx, fromID); err != nil {
		return err
	}
	if _, err := s.users.User(ctx, toID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Approving friend request", slog.Int("fromID", fromID), slog.Int("toID", toID))
	return s.users.ApproveFriend(ctx, fromID, toID)
}

// RemoveFriend drops friendID from userID's friend list. The target must
// currently be a friend, otherwise ErrFriendNotFound.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) (*domain.User, error) {
	if userID == friendID {
		return nil, incorrectParameter("friendId")
	}
	user, err := s.users.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.User(ctx, friendID); err != nil {
		return nil, err
	}
	if !containsID(user.Friends, friendID) {
		return nil, store.ErrFriendNotFound
	}
	s.logger.InfoContext(ctx, "Removing friend", slog.Int("userID", userID), slog.Int("friendID", friendID))
	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return nil, err
	}
	return s.users.User(ctx, userID)
}

func (s *UserService) UserFriends(ctx context.Context, userID int) ([]*domain.User, error) {
	if _, err := s.users.User(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.UserFriends(ctx, userID)
}

// CommonFriends resolves the intersection of both users' friend-id sets to
// full user records.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int) ([]*domain.User, error) {
	if userID == otherID {
		return nil, incorrectParameter("otherId")
	}
	user, err := s.users.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.users.User(ctx, otherID)
	if err != nil {
		return nil, err
	}

	common := make([]*domain.User, 0)
	for _, friendID := range user.Friends {
		if !containsID(other.Friends, friendID) {
			continue
		}
		friend, err := s.users.User(ctx, friendID)
		if err != nil {
			return nil, err
		}
		common = append(common, friend)
	}
	return common, nil
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
