package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/models"
	"github.com/jsck45/social-network-api/store"
)

// Response shapes returned to callers. Stored author ids are expanded to
// usernames and the counts are computed from the live arrays; nothing here
// is read from a stored counter.

type ReactionResponse struct {
	ReactionID   primitive.ObjectID `json:"reactionId"`
	ReactionBody string             `json:"reactionBody"`
	Username     string             `json:"username"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type ThoughtResponse struct {
	ID            primitive.ObjectID `json:"_id"`
	ThoughtText   string             `json:"thoughtText"`
	Username      string             `json:"username"`
	CreatedAt     time.Time          `json:"createdAt"`
	Reactions     []ReactionResponse `json:"reactions"`
	ReactionCount int                `json:"reactionCount"`
}

type UserThoughtResponse struct {
	ThoughtID     primitive.ObjectID `json:"thoughtId"`
	ThoughtText   string             `json:"thoughtText"`
	Reactions     []ReactionResponse `json:"reactions"`
	ReactionCount int                `json:"reactionCount"`
}

type FriendResponse struct {
	FriendID primitive.ObjectID `json:"friendId"`
	Username string             `json:"username"`
}

type UserResponse struct {
	UserID      primitive.ObjectID    `json:"userId"`
	Username    string                `json:"username"`
	Email       string                `json:"email"`
	Thoughts    []UserThoughtResponse `json:"thoughts"`
	Friends     []FriendResponse      `json:"friends"`
	FriendCount int                   `json:"friendCount"`
}

// usernameResolver turns user ids into usernames, caching lookups for the
// duration of one projection. A reference to a missing user fails the whole
// read with DanglingReferenceError.
type usernameResolver struct {
	users store.UserStore
	cache map[primitive.ObjectID]string
}

func newUsernameResolver(users store.UserStore) *usernameResolver {
	return &usernameResolver{users: users, cache: map[primitive.ObjectID]string{}}
}

func (r *usernameResolver) prime(user *models.User) {
	r.cache[user.ID] = user.Username
}

func (r *usernameResolver) resolve(ctx context.Context, id primitive.ObjectID) (string, error) {
	if username, ok := r.cache[id]; ok {
		return username, nil
	}
	user, err := r.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.NewDanglingReference(apperrors.EntityUser, id.Hex())
	}
	r.cache[id] = user.Username
	return user.Username, nil
}

func expandReactions(ctx context.Context, resolver *usernameResolver, reactions []models.Reaction) ([]ReactionResponse, error) {
	out := make([]ReactionResponse, 0, len(reactions))
	for _, reaction := range reactions {
		username, err := resolver.resolve(ctx, reaction.Username)
		if err != nil {
			return nil, err
		}
		out = append(out, ReactionResponse{
			ReactionID:   reaction.ID,
			ReactionBody: reaction.ReactionBody,
			Username:     username,
			CreatedAt:    reaction.CreatedAt,
		})
	}
	return out, nil
}

func expandThought(ctx context.Context, resolver *usernameResolver, thought *models.Thought) (*ThoughtResponse, error) {
	username, err := resolver.resolve(ctx, thought.Username)
	if err != nil {
		return nil, err
	}
	reactions, err := expandReactions(ctx, resolver, thought.Reactions)
	if err != nil {
		return nil, err
	}
	return &ThoughtResponse{
		ID:            thought.ID,
		ThoughtText:   thought.ThoughtText,
		Username:      username,
		CreatedAt:     thought.CreatedAt,
		Reactions:     reactions,
		ReactionCount: thought.ReactionCount(),
	}, nil
}

// expandUser assembles the denormalized user view: its thoughts with their
// reactions expanded, and its friends as id+username pairs. Thought and
// friend order follows the stored reference order, not any re-sort.
func expandUser(ctx context.Context, resolver *usernameResolver, thoughts store.ThoughtStore, user *models.User) (*UserResponse, error) {
	resolver.prime(user)

	thoughtDocs, err := thoughts.FindByIDs(ctx, user.Thoughts)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Thought, len(thoughtDocs))
	for _, doc := range thoughtDocs {
		byID[doc.ID] = doc
	}

	expandedThoughts := make([]UserThoughtResponse, 0, len(user.Thoughts))
	for _, ref := range user.Thoughts {
		doc, ok := byID[ref]
		if !ok {
			return nil, apperrors.NewDanglingReference(apperrors.EntityThought, ref.Hex())
		}
		reactions, err := expandReactions(ctx, resolver, doc.Reactions)
		if err != nil {
			return nil, err
		}
		expandedThoughts = append(expandedThoughts, UserThoughtResponse{
			ThoughtID:     doc.ID,
			ThoughtText:   doc.ThoughtText,
			Reactions:     reactions,
			ReactionCount: doc.ReactionCount(),
		})
	}

	friends := make([]FriendResponse, 0, len(user.Friends))
	for _, ref := range user.Friends {
		username, err := resolver.resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		friends = append(friends, FriendResponse{FriendID: ref, Username: username})
	}

	return &UserResponse{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Thoughts:    expandedThoughts,
		Friends:     friends,
		FriendCount: user.FriendCount(),
	}, nil
}
