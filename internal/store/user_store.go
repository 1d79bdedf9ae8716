package store

import (
	"context"

	"filmrate/internal/domain"
)

// UserStore is the persistence boundary for users and friend edges.
//
// A friend edge is directed: AddFriend(a, b) records an unapproved request
// from a to b, which already makes b visible in a's friend list. ApproveFriend
// flips the edge's approved flag, making a visible in b's list as well.
type UserStore interface {
	AddUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	User(ctx context.Context, userID int) (*domain.User, error)
	Users(ctx context.Context) ([]*domain.User, error)

	AddFriend(ctx context.Context, userID, friendID int) error
	ApproveFriend(ctx context.Context, fromID, toID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	UserFriends(ctx context.Context, userID int) ([]*domain.User, error)
}
