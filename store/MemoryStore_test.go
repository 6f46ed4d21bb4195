package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/models"
)

func newUser(username, email string) *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Email:    email,
		Thoughts: []primitive.ObjectID{},
		Friends:  []primitive.ObjectID{},
	}
}

func newThought(author primitive.ObjectID, text string) *models.Thought {
	return &models.Thought{
		ID:          primitive.NewObjectID(),
		ThoughtText: text,
		Username:    author,
		CreatedAt:   time.Now(),
		Reactions:   []models.Reaction{},
	}
}

func TestMemoryUserStore_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	require.NoError(t, s.Insert(ctx, newUser("alice", "a@x.com")))

	err := s.Insert(ctx, newUser("alice", "other@x.com"))
	var duplicate *apperrors.DuplicateKeyError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "username", duplicate.Field)

	err = s.Insert(ctx, newUser("other", "a@x.com"))
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "email", duplicate.Field)
}

func TestMemoryUserStore_UpdateProfileUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	alice := newUser("alice", "a@x.com")
	require.NoError(t, s.Insert(ctx, alice))
	require.NoError(t, s.Insert(ctx, newUser("bob", "b@x.com")))

	_, err := s.UpdateProfile(ctx, alice.ID, "bob", "")
	var duplicate *apperrors.DuplicateKeyError
	require.ErrorAs(t, err, &duplicate)

	// updating to one's own current value is not a conflict
	updated, err := s.UpdateProfile(ctx, alice.ID, "", "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", updated.Email)

	missing, err := s.UpdateProfile(ctx, primitive.NewObjectID(), "carol", "")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryUserStore_FriendSetSemantics(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	alice := newUser("alice", "a@x.com")
	require.NoError(t, s.Insert(ctx, alice))
	friend := primitive.NewObjectID()

	require.NoError(t, s.AddFriend(ctx, alice.ID, friend))
	require.NoError(t, s.AddFriend(ctx, alice.ID, friend))

	got, err := s.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Friends, 1)

	require.NoError(t, s.RemoveFriend(ctx, alice.ID, friend))
	require.NoError(t, s.RemoveFriend(ctx, alice.ID, friend))

	got, err = s.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Friends)
}

func TestMemoryUserStore_ThoughtRefs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	alice := newUser("alice", "a@x.com")
	require.NoError(t, s.Insert(ctx, alice))
	thoughtID := primitive.NewObjectID()

	matched, err := s.PushThoughtRef(ctx, alice.ID, thoughtID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	matched, err = s.PushThoughtRef(ctx, primitive.NewObjectID(), thoughtID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)

	modified, err := s.PullThoughtRef(ctx, thoughtID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	modified, err = s.PullThoughtRef(ctx, thoughtID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), modified)
}

func TestMemoryThoughtStore_ReactionSequence(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryThoughtStore()
	author := primitive.NewObjectID()
	thought := newThought(author, "hello")
	require.NoError(t, s.Insert(ctx, thought))

	first := models.Reaction{ID: primitive.NewObjectID(), ReactionBody: "one", Username: author, CreatedAt: time.Now()}
	second := models.Reaction{ID: primitive.NewObjectID(), ReactionBody: "two", Username: author, CreatedAt: time.Now()}

	updated, err := s.PushReaction(ctx, thought.ID, first)
	require.NoError(t, err)
	require.Len(t, updated.Reactions, 1)

	updated, err = s.PushReaction(ctx, thought.ID, second)
	require.NoError(t, err)
	require.Len(t, updated.Reactions, 2)
	assert.Equal(t, "one", updated.Reactions[0].ReactionBody)
	assert.Equal(t, "two", updated.Reactions[1].ReactionBody)

	updated, err = s.PullReaction(ctx, thought.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, updated.Reactions, 1)
	assert.Equal(t, "two", updated.Reactions[0].ReactionBody)

	missing, err := s.PushReaction(ctx, primitive.NewObjectID(), first)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryThoughtStore_PullReactionsByAuthor(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryThoughtStore()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	one := newThought(alice, "one")
	two := newThought(alice, "two")
	require.NoError(t, s.Insert(ctx, one))
	require.NoError(t, s.Insert(ctx, two))

	_, err := s.PushReaction(ctx, one.ID, models.Reaction{ID: primitive.NewObjectID(), ReactionBody: "hi", Username: bob, CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = s.PushReaction(ctx, two.ID, models.Reaction{ID: primitive.NewObjectID(), ReactionBody: "yo", Username: bob, CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = s.PushReaction(ctx, two.ID, models.Reaction{ID: primitive.NewObjectID(), ReactionBody: "self", Username: alice, CreatedAt: time.Now()})
	require.NoError(t, err)

	modified, err := s.PullReactionsByAuthor(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(2), modified)

	remaining, err := s.FindByID(ctx, two.ID)
	require.NoError(t, err)
	require.Len(t, remaining.Reactions, 1)
	assert.Equal(t, "self", remaining.Reactions[0].ReactionBody)
}

// Concurrent appends to one thought's reaction sequence must all be
// retained; the store serializes per-document array writes so no
// read-modify-write race can drop one.
func TestMemoryThoughtStore_ConcurrentPushReactionLosesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryThoughtStore()
	author := primitive.NewObjectID()
	thought := newThought(author, "hello")
	require.NoError(t, s.Insert(ctx, thought))

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.PushReaction(ctx, thought.ID, models.Reaction{
				ID:           primitive.NewObjectID(),
				ReactionBody: "hi",
				Username:     author,
				CreatedAt:    time.Now(),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.FindByID(ctx, thought.ID)
	require.NoError(t, err)
	require.Len(t, got.Reactions, writers)

	seen := map[primitive.ObjectID]bool{}
	for _, r := range got.Reactions {
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}
}

// Concurrent friend-set writes on one user must keep set semantics: the
// same friend added from many goroutines lands once, distinct friends all
// land.
func TestMemoryUserStore_ConcurrentAddFriend(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	alice := newUser("alice", "a@x.com")
	require.NoError(t, s.Insert(ctx, alice))

	const writers = 50
	same := primitive.NewObjectID()
	distinct := make([]primitive.ObjectID, writers)
	for i := range distinct {
		distinct[i] = primitive.NewObjectID()
	}

	var wg sync.WaitGroup
	wg.Add(writers * 2)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AddFriend(ctx, alice.ID, same))
		}()
		go func(id primitive.ObjectID) {
			defer wg.Done()
			assert.NoError(t, s.AddFriend(ctx, alice.ID, id))
		}(distinct[i])
	}
	wg.Wait()

	got, err := s.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Friends, writers+1)

	seen := map[primitive.ObjectID]bool{}
	for _, f := range got.Friends {
		assert.False(t, seen[f])
		seen[f] = true
	}
	assert.True(t, seen[same])
}

func TestMemoryThoughtStore_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryThoughtStore()
	author := primitive.NewObjectID()

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, s.Insert(ctx, newThought(author, text)))
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].ThoughtText)
	assert.Equal(t, "third", all[2].ThoughtText)
}
