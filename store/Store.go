// Package store holds the persistence contracts for the users and thoughts
// collections, a MongoDB implementation of each, and an in-memory
// implementation backing the test suite.
//
// Lookups return (nil, nil) when no document matches; real faults come back
// as *apperrors.StoreError, uniqueness violations as
// *apperrors.DuplicateKeyError. Array mutations map to single-document
// atomic operators so that concurrent writers never lose an update.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsck45/social-network-api/models"
)

type UserStore interface {
	// Insert stores a new user, enforcing username and email uniqueness.
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	// UpdateProfile sets the non-empty fields and returns the updated user.
	// Uniqueness is re-checked for any field being changed.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error)
	// Delete removes the user, reporting whether it existed.
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)

	// PushThoughtRef appends a thought id to the user's thoughts list,
	// returning the number of matched user documents.
	PushThoughtRef(ctx context.Context, userID, thoughtID primitive.ObjectID) (int64, error)
	// PullThoughtRef strips a thought id from every user referencing it,
	// returning the number of users modified.
	PullThoughtRef(ctx context.Context, thoughtID primitive.ObjectID) (int64, error)

	// AddFriend inserts friendID into the user's friend set. Set semantics:
	// inserting a present member is a no-op.
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	// RemoveFriend pulls friendID from the user's friend set. Pulling a
	// non-member is a no-op.
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
}

type ThoughtStore interface {
	Insert(ctx context.Context, thought *models.Thought) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	FindAll(ctx context.Context) ([]models.Thought, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Thought, error)
	// UpdateText replaces the thought text and returns the updated thought.
	UpdateText(ctx context.Context, id primitive.ObjectID, text string) (*models.Thought, error)
	// Delete removes the thought and its embedded reactions, reporting
	// whether it existed.
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)

	// PushReaction appends a reaction to the thought's reaction sequence and
	// returns the updated thought, nil when the thought is absent.
	PushReaction(ctx context.Context, thoughtID primitive.ObjectID, reaction models.Reaction) (*models.Thought, error)
	// PullReaction removes the reaction with the given id and returns the
	// updated thought, nil when the thought is absent.
	PullReaction(ctx context.Context, thoughtID, reactionID primitive.ObjectID) (*models.Thought, error)
	// PullReactionsByAuthor strips every reaction authored by userID across
	// all thoughts, returning the number of thoughts modified.
	PullReactionsByAuthor(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
