package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"filmrate/internal/domain"
)

type edgeKey struct {
	from, to int
}

type friendEdge struct {
	approved  bool
	createdAt time.Time
}

// MemoryUserStore is a mutex-guarded in-memory UserStore with interior id
// generation. Friend edges are keyed by their directed (from, to) pair.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*domain.User
	edges  map[edgeKey]*friendEdge
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		nextID: 1,
		users:  make(map[int]*domain.User),
		edges:  make(map[edgeKey]*friendEdge),
	}
}

func (s *MemoryUserStore) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Login == user.Login {
			return nil, ErrConstraintViolated
		}
	}
	stored := *user
	stored.ID = s.nextID
	s.nextID++
	s.users[stored.ID] = &stored
	return s.hydrateUser(stored.ID), nil
}

func (s *MemoryUserStore) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && (existing.Email == user.Email || existing.Login == user.Login) {
			return nil, ErrConstraintViolated
		}
	}
	stored := *user
	s.users[user.ID] = &stored
	return s.hydrateUser(user.ID), nil
}

func (s *MemoryUserStore) User(ctx context.Context, userID int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	return s.hydrateUser(userID), nil
}

func (s *MemoryUserStore) Users(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.hydrateUser(id))
	}
	return users, nil
}

func (s *MemoryUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	if _, ok := s.users[friendID]; !ok {
		return ErrUserNotFound
	}
	key := edgeKey{from: userID, to: friendID}
	if _, exists := s.edges[key]; exists {
		return ErrConstraintViolated
	}
	s.edges[key] = &friendEdge{createdAt: time.Now().UTC()}
	return nil
}

func (s *MemoryUserStore) ApproveFriend(ctx context.Context, fromID, toID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge, ok := s.edges[edgeKey{from: fromID, to: toID}]
	if !ok {
		return ErrUserNotFound
	}
	edge.approved = true
	return nil
}

// RemoveFriend deletes the edge in whichever direction it is stored: the
// user's own outgoing edge, or an approved inbound one.
func (s *MemoryUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	if _, ok := s.edges[edgeKey{from: userID, to: friendID}]; ok {
		delete(s.edges, edgeKey{from: userID, to: friendID})
		removed = true
	}
	if edge, ok := s.edges[edgeKey{from: friendID, to: userID}]; ok && edge.approved {
		delete(s.edges, edgeKey{from: friendID, to: userID})
		removed = true
	}
	if !removed {
		return ErrFriendNotFound
	}
	return nil
}

func (s *MemoryUserStore) UserFriends(ctx context.Context, userID int) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	friends := make([]*domain.User, 0)
	for _, friendID := range s.friendIDs(userID) {
		friends = append(friends, s.hydrateUser(friendID))
	}
	return friends, nil
}

// friendIDs applies the visibility rule: all outgoing edges count, inbound
// ones only once approved. Caller holds the lock.
func (s *MemoryUserStore) friendIDs(userID int) []int {
	set := make(map[int]bool)
	for key, edge := range s.edges {
		if key.from == userID {
			set[key.to] = true
		}
		if key.to == userID && edge.approved {
			set[key.from] = true
		}
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// hydrateUser returns a copy safe to hand out. Caller holds the lock.
func (s *MemoryUserStore) hydrateUser(userID int) *domain.User {
	user := *s.users[userID]
	user.Friends = s.friendIDs(userID)
	return &user
}
