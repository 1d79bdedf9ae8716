package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"filmrate/internal/domain"
)

// PostgresUserStore implements UserStore on top of PostgreSQL.
type PostgresUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger}, nil
}

// friendIDsQuery derives a user's friend set from directed edges: everyone the
// user requested (approved or not) plus everyone whose request to the user was
// approved.
const friendIDsQuery = `
	SELECT DISTINCT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END AS friend_id
	FROM friends
	WHERE user_id = $1 OR (friend_id = $1 AND request_status = TRUE)
	ORDER BY friend_id`

func (s *PostgresUserStore) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`

	s.logger.DebugContext(ctx, "Executing AddUser query", slog.String("login", user.Login))
	var id int
	err := s.db.QueryRowContext(ctx, query, user.Email, user.Login, user.Name, user.Birthday).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", translatePGError(err))
	}
	return s.User(ctx, id)
}

func (s *PostgresUserStore) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`

	s.logger.DebugContext(ctx, "Executing UpdateUser query", slog.Int("userID", user.ID))
	result, err := s.db.ExecContext(ctx, query, user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", translatePGError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.User(ctx, user.ID)
}

func (s *PostgresUserStore) User(ctx context.Context, userID int) (*domain.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users WHERE id = $1`

	var user domain.User
	err := s.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if err := s.loadFriendIDs(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresUserStore) Users(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users ORDER BY id`

	var rows []domain.User
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		user := rows[i]
		if err := s.loadFriendIDs(ctx, &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, nil
}

// AddFriend records a one-directional, unapproved friend request.
func (s *PostgresUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	query := `INSERT INTO friends (user_id, friend_id, request_status, created_at)
	          VALUES ($1, $2, FALSE, NOW())`

	s.logger.DebugContext(ctx, "Executing AddFriend query", slog.Int("userID", userID), slog.Int("friendID", friendID))
	if _, err := s.db.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("failed to add friend: %w", translatePGError(err))
	}
	return nil
}

// ApproveFriend flips the approved flag on the fromID->toID request. A missing
// request surfaces as ErrUserNotFound, mirroring how absent ids surface
// elsewhere in the friends API.
func (s *PostgresUserStore) ApproveFriend(ctx context.Context, fromID, toID int) error {
	query := `UPDATE friends SET request_status = TRUE WHERE user_id = $1 AND friend_id = $2`

	s.logger.DebugContext(ctx, "Executing ApproveFriend query", slog.Int("fromID", fromID), slog.Int("toID", toID))
	result, err := s.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return fmt.Errorf("failed to approve friend: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check approve result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: no friend request from %d to %d", ErrUserNotFound, fromID, toID)
	}
	return nil
}

// RemoveFriend deletes the edge in whichever direction it is stored: the
// user's own outgoing edge, or an approved inbound one.
func (s *PostgresUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	query := `DELETE FROM friends
	          WHERE (user_id = $1 AND friend_id = $2)
	             OR (user_id = $2 AND friend_id = $1 AND request_status = TRUE)`

	s.logger.DebugContext(ctx, "Executing RemoveFriend query", slog.Int("userID", userID), slog.Int("friendID", friendID))
	result, err := s.db.ExecContext(ctx, query, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check remove result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrFriendNotFound
	}
	return nil
}

func (s *PostgresUserStore) UserFriends(ctx context.Context, userID int) ([]*domain.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users WHERE id IN (
		SELECT DISTINCT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END
		FROM friends
		WHERE user_id = $1 OR (friend_id = $1 AND request_status = TRUE))
	ORDER BY id`

	var rows []domain.User
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user friends: %w", err)
	}
	friends := make([]*domain.User, 0, len(rows))
	for i := range rows {
		friend := rows[i]
		if err := s.loadFriendIDs(ctx, &friend); err != nil {
			return nil, err
		}
		friends = append(friends, &friend)
	}
	return friends, nil
}

func (s *PostgresUserStore) loadFriendIDs(ctx context.Context, user *domain.User) error {
	user.Friends = []int{}
	if err := s.db.SelectContext(ctx, &user.Friends, friendIDsQuery, user.ID); err != nil {
		return fmt.Errorf("failed to load friend ids: %w", err)
	}
	return nil
}
