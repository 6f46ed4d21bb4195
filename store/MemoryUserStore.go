package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/models"
)

// MemoryUserStore is a mutex-guarded in-memory UserStore. It mirrors the
// Mongo implementation's semantics, including uniqueness enforcement and
// set behaviour on friends, and backs the service tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
	order []primitive.ObjectID
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[primitive.ObjectID]models.User{}}
}

func copyUser(u models.User) models.User {
	out := u
	out.Thoughts = append([]primitive.ObjectID(nil), u.Thoughts...)
	out.Friends = append([]primitive.ObjectID(nil), u.Friends...)
	return out
}

func (s *MemoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return apperrors.NewDuplicateKey("username")
		}
		if existing.Email == user.Email {
			return apperrors.NewDuplicateKey("email")
		}
	}
	s.users[user.ID] = copyUser(*user)
	s.order = append(s.order, user.ID)
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := copyUser(user)
	return &out, nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			out := copyUser(user)
			return &out, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) FindAll(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, id := range s.order {
		if user, ok := s.users[id]; ok {
			out = append(out, copyUser(user))
		}
	}
	return out, nil
}

func (s *MemoryUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			out = append(out, copyUser(user))
		}
	}
	return out, nil
}

func (s *MemoryUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, username, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username != "" {
		for otherID, other := range s.users {
			if otherID != id && other.Username == username {
				return nil, apperrors.NewDuplicateKey("username")
			}
		}
	}
	if email != "" {
		for otherID, other := range s.users {
			if otherID != id && other.Email == email {
				return nil, apperrors.NewDuplicateKey("email")
			}
		}
	}

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	s.users[id] = user
	out := copyUser(user)
	return &out, nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *MemoryUserStore) PushThoughtRef(_ context.Context, userID, thoughtID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return 0, nil
	}
	user.Thoughts = append(user.Thoughts, thoughtID)
	s.users[userID] = user
	return 1, nil
}

func (s *MemoryUserStore) PullThoughtRef(_ context.Context, thoughtID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var modified int64
	for id, user := range s.users {
		kept := user.Thoughts[:0:0]
		for _, ref := range user.Thoughts {
			if ref != thoughtID {
				kept = append(kept, ref)
			}
		}
		if len(kept) != len(user.Thoughts) {
			user.Thoughts = kept
			s.users[id] = user
			modified++
		}
	}
	return modified, nil
}

func (s *MemoryUserStore) AddFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil
	}
	for _, f := range user.Friends {
		if f == friendID {
			return nil
		}
	}
	user.Friends = append(user.Friends, friendID)
	s.users[userID] = user
	return nil
}

func (s *MemoryUserStore) RemoveFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil
	}
	kept := user.Friends[:0:0]
	for _, f := range user.Friends {
		if f != friendID {
			kept = append(kept, f)
		}
	}
	user.Friends = kept
	s.users[userID] = user
	return nil
}
