package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsck45/social-network-api/models"
)

// MemoryThoughtStore is the in-memory counterpart of MongoThoughtStore.
type MemoryThoughtStore struct {
	mu       sync.RWMutex
	thoughts map[primitive.ObjectID]models.Thought
	order    []primitive.ObjectID
}

func NewMemoryThoughtStore() *MemoryThoughtStore {
	return &MemoryThoughtStore{thoughts: map[primitive.ObjectID]models.Thought{}}
}

func copyThought(t models.Thought) models.Thought {
	out := t
	out.Reactions = append([]models.Reaction(nil), t.Reactions...)
	return out
}

func (s *MemoryThoughtStore) Insert(_ context.Context, thought *models.Thought) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.thoughts[thought.ID] = copyThought(*thought)
	s.order = append(s.order, thought.ID)
	return nil
}

func (s *MemoryThoughtStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Thought, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thought, ok := s.thoughts[id]
	if !ok {
		return nil, nil
	}
	out := copyThought(thought)
	return &out, nil
}

func (s *MemoryThoughtStore) FindAll(_ context.Context) ([]models.Thought, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Thought
	for _, id := range s.order {
		if thought, ok := s.thoughts[id]; ok {
			out = append(out, copyThought(thought))
		}
	}
	return out, nil
}

func (s *MemoryThoughtStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Thought, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Thought
	for _, id := range ids {
		if thought, ok := s.thoughts[id]; ok {
			out = append(out, copyThought(thought))
		}
	}
	return out, nil
}

func (s *MemoryThoughtStore) UpdateText(_ context.Context, id primitive.ObjectID, text string) (*models.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thought, ok := s.thoughts[id]
	if !ok {
		return nil, nil
	}
	thought.ThoughtText = text
	s.thoughts[id] = thought
	out := copyThought(thought)
	return &out, nil
}

func (s *MemoryThoughtStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.thoughts[id]; !ok {
		return false, nil
	}
	delete(s.thoughts, id)
	return true, nil
}

func (s *MemoryThoughtStore) PushReaction(_ context.Context, thoughtID primitive.ObjectID, reaction models.Reaction) (*models.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thought, ok := s.thoughts[thoughtID]
	if !ok {
		return nil, nil
	}
	thought.Reactions = append(append([]models.Reaction(nil), thought.Reactions...), reaction)
	s.thoughts[thoughtID] = thought
	out := copyThought(thought)
	return &out, nil
}

func (s *MemoryThoughtStore) PullReaction(_ context.Context, thoughtID, reactionID primitive.ObjectID) (*models.Thought, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thought, ok := s.thoughts[thoughtID]
	if !ok {
		return nil, nil
	}
	kept := thought.Reactions[:0:0]
	for _, r := range thought.Reactions {
		if r.ID != reactionID {
			kept = append(kept, r)
		}
	}
	thought.Reactions = kept
	s.thoughts[thoughtID] = thought
	out := copyThought(thought)
	return &out, nil
}

func (s *MemoryThoughtStore) PullReactionsByAuthor(_ context.Context, userID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var modified int64
	for id, thought := range s.thoughts {
		kept := thought.Reactions[:0:0]
		for _, r := range thought.Reactions {
			if r.Username != userID {
				kept = append(kept, r)
			}
		}
		if len(kept) != len(thought.Reactions) {
			thought.Reactions = kept
			s.thoughts[id] = thought
			modified++
		}
	}
	return modified, nil
}
