package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsck45/social-network-api/apperrors"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv()

	user := env.createUser(t, "  alice  ", "a@x.com")
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, 0, user.FriendCount)
	assert.Empty(t, user.Thoughts)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "dup", "a@x.com")

	_, err := env.userSvc.CreateUser(context.Background(), CreateUserInput{
		Username: "dup", Email: "other@x.com",
	})
	var duplicate *apperrors.DuplicateKeyError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "username", duplicate.Field)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "alice", "a@x.com")

	_, err := env.userSvc.CreateUser(context.Background(), CreateUserInput{
		Username: "other", Email: "a@x.com",
	})
	var duplicate *apperrors.DuplicateKeyError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "email", duplicate.Field)
}

func TestCreateUser_Validation(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		name     string
		username string
		email    string
	}{
		{"blank username", "   ", "a@x.com"},
		{"missing email", "alice", ""},
		{"malformed email", "alice", "not-an-email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.userSvc.CreateUser(context.Background(), CreateUserInput{
				Username: tc.username, Email: tc.email,
			})
			var validation *apperrors.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")
	env.createUser(t, "bob", "b@x.com")

	updated, err := env.userSvc.UpdateUser(ctx, alice.UserID.Hex(), UpdateUserInput{Email: "alice@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@x.com", updated.Email)

	_, err = env.userSvc.UpdateUser(ctx, alice.UserID.Hex(), UpdateUserInput{Username: "bob"})
	var duplicate *apperrors.DuplicateKeyError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "username", duplicate.Field)

	_, err = env.userSvc.UpdateUser(ctx, primitive.NewObjectID().Hex(), UpdateUserInput{Username: "carol"})
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAddFriend_Idempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")
	bob := env.createUser(t, "bob", "b@x.com")

	first, err := env.userSvc.AddFriend(ctx, alice.UserID.Hex(), bob.UserID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, first.FriendCount)
	require.Len(t, first.Friends, 1)
	assert.Equal(t, "bob", first.Friends[0].Username)

	second, err := env.userSvc.AddFriend(ctx, alice.UserID.Hex(), bob.UserID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, second.FriendCount)
}

func TestAddFriend_OneSided(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")
	bob := env.createUser(t, "bob", "b@x.com")

	_, err := env.userSvc.AddFriend(ctx, alice.UserID.Hex(), bob.UserID.Hex())
	require.NoError(t, err)

	// only the requesting user's set is updated
	bobView, err := env.userSvc.GetUser(ctx, bob.UserID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, bobView.FriendCount)
}

func TestAddFriend_Errors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")

	_, err := env.userSvc.AddFriend(ctx, alice.UserID.Hex(), "garbage")
	var invalid *apperrors.InvalidReferenceError
	assert.ErrorAs(t, err, &invalid)

	_, err = env.userSvc.AddFriend(ctx, alice.UserID.Hex(), primitive.NewObjectID().Hex())
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = env.userSvc.AddFriend(ctx, alice.UserID.Hex(), alice.UserID.Hex())
	assert.ErrorAs(t, err, &invalid)
}

func TestRemoveFriend_NonMemberIsNoOp(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")
	bob := env.createUser(t, "bob", "b@x.com")

	user, err := env.userSvc.RemoveFriend(ctx, alice.UserID.Hex(), bob.UserID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, user.FriendCount)
}

func TestRemoveFriend(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")
	bob := env.createUser(t, "bob", "b@x.com")
	carol := env.createUser(t, "carol", "c@x.com")

	_, err := env.userSvc.AddFriend(ctx, alice.UserID.Hex(), bob.UserID.Hex())
	require.NoError(t, err)
	_, err = env.userSvc.AddFriend(ctx, alice.UserID.Hex(), carol.UserID.Hex())
	require.NoError(t, err)

	user, err := env.userSvc.RemoveFriend(ctx, alice.UserID.Hex(), bob.UserID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, user.FriendCount)
	require.Len(t, user.Friends, 1)
	assert.Equal(t, "carol", user.Friends[0].Username)
}

func TestDeleteUser_PrunesReactions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.createUser(t, "alice", "a@x.com")
	bob := env.createUser(t, "bob", "b@x.com")
	thought := env.createThought(t, "alice", "hello")

	_, err := env.thoughtSvc.AddReaction(ctx, thought.ID.Hex(), AddReactionInput{
		ReactionBody: "nice!", Username: "bob",
	})
	require.NoError(t, err)

	report, err := env.userSvc.DeleteUser(ctx, bob.UserID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.RecordsTouched)
	assert.Empty(t, report.Note)

	// the thought survives, the deleted user's reaction does not
	current, err := env.thoughtSvc.GetThought(ctx, thought.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, current.ReactionCount)
}

func TestDeleteUser_NoReferencingThoughtIsInformational(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")

	report, err := env.userSvc.DeleteUser(ctx, alice.UserID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.RecordsTouched)
	assert.NotEmpty(t, report.Note)
}

func TestDeleteUser_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.userSvc.DeleteUser(context.Background(), primitive.NewObjectID().Hex())
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, apperrors.EntityUser, notFound.Entity)
}

func TestGetUser_ExpandsThoughtsAndFriends(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", "a@x.com")
	bob := env.createUser(t, "bob", "b@x.com")

	thought := env.createThought(t, "alice", "hello")
	_, err := env.thoughtSvc.AddReaction(ctx, thought.ID.Hex(), AddReactionInput{
		ReactionBody: "nice!", Username: "bob",
	})
	require.NoError(t, err)
	_, err = env.userSvc.AddFriend(ctx, alice.UserID.Hex(), bob.UserID.Hex())
	require.NoError(t, err)

	user, err := env.userSvc.GetUser(ctx, alice.UserID.Hex())
	require.NoError(t, err)
	require.Len(t, user.Thoughts, 1)
	assert.Equal(t, "hello", user.Thoughts[0].ThoughtText)
	assert.Equal(t, 1, user.Thoughts[0].ReactionCount)
	require.Len(t, user.Thoughts[0].Reactions, 1)
	assert.Equal(t, "bob", user.Thoughts[0].Reactions[0].Username)
	assert.Equal(t, 1, user.FriendCount)
}

// The full round trip: create users, post a thought, react, read it back
// fully expanded.
func TestEndToEnd(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.createUser(t, "alice", "a@x.com")
	env.createUser(t, "bob", "b@x.com")

	created := env.createThought(t, "alice", "hello")
	_, err := env.thoughtSvc.AddReaction(ctx, created.ID.Hex(), AddReactionInput{
		ReactionBody: "nice!", Username: "bob",
	})
	require.NoError(t, err)

	thought, err := env.thoughtSvc.GetThought(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "hello", thought.ThoughtText)
	assert.Equal(t, "alice", thought.Username)
	assert.Equal(t, 1, thought.ReactionCount)
	require.Len(t, thought.Reactions, 1)
	assert.Equal(t, "nice!", thought.Reactions[0].ReactionBody)
	assert.Equal(t, "bob", thought.Reactions[0].Username)
}
