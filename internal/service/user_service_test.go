package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmrate/internal/domain"
	"filmrate/internal/service"
	"filmrate/internal/store"
)

func newUserService(t *testing.T) *service.UserService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewUserService(store.NewMemoryUserStore(), logger)
}

func addUser(t *testing.T, users *service.UserService, login string) *domain.User {
	t.Helper()
	user, err := users.AddUser(context.Background(), &domain.User{
		Email:    login + "@mail.ru",
		Login:    login,
		Birthday: domain.NewDate(1946, time.August, 20),
	})
	require.NoError(t, err)
	return user
}

func TestAddUserDefaultsNameToLogin(t *testing.T) {
	users := newUserService(t)

	user, err := users.AddUser(context.Background(), &domain.User{
		Email: "mail@mail.ru",
		Login: "dolore",
	})
	require.NoError(t, err)
	assert.Equal(t, "dolore", user.Name)
	assert.Empty(t, user.Friends)
}

func TestUpdateUserNotFound(t *testing.T) {
	users := newUserService(t)

	_, err := users.UpdateUser(context.Background(), &domain.User{
		ID:    77,
		Email: "ghost@mail.ru",
		Login: "ghost",
	})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestFriendRequestVisibility(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	alice := addUser(t, users, "alice")
	bob := addUser(t, users, "bob")

	// the requester sees the target immediately
	updated, err := users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, updated.Friends)

	bobFriends, err := users.UserFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFriends)

	// approval makes the friendship visible from both sides
	require.NoError(t, users.ApproveFriend(ctx, alice.ID, bob.ID))

	bobFriends, err = users.UserFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, alice.ID, bobFriends[0].ID)
}

func TestAddFriendGuards(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	alice := addUser(t, users, "alice")

	_, err := users.AddFriend(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, service.ErrIncorrectParameter)

	_, err = users.AddFriend(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = users.AddFriend(ctx, 999, alice.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestApproveFriendWithoutRequest(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	alice := addUser(t, users, "alice")
	bob := addUser(t, users, "bob")

	err := users.ApproveFriend(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestRemoveFriend(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	alice := addUser(t, users, "alice")
	bob := addUser(t, users, "bob")

	// not currently a friend
	_, err := users.RemoveFriend(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, store.ErrFriendNotFound)

	_, err = users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	updated, err := users.RemoveFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Friends)
}

func TestRemoveApprovedInboundFriend(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	alice := addUser(t, users, "alice")
	bob := addUser(t, users, "bob")

	_, err := users.AddFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, users.ApproveFriend(ctx, alice.ID, bob.ID))

	// bob's friendship with alice rests on the approved inbound edge
	updated, err := users.RemoveFriend(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Friends)

	aliceFriends, err := users.UserFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)
}

func TestCommonFriends(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	alice := addUser(t, users, "alice")
	bob := addUser(t, users, "bob")
	carol := addUser(t, users, "carol")

	common, err := users.CommonFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, common)

	_, err = users.AddFriend(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = users.AddFriend(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	common, err = users.CommonFriends(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, carol.ID, common[0].ID)
	assert.Equal(t, "carol", common[0].Login)

	_, err = users.CommonFriends(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, service.ErrIncorrectParameter)
}
