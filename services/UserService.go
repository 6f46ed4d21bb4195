package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/logger"
	"github.com/jsck45/social-network-api/models"
	"github.com/jsck45/social-network-api/store"
)

// UserService owns the user lifecycle and the friend set. Friendship is
// one-sided: addFriend and removeFriend touch only the requesting user's
// document, a documented limitation carried over from the observed
// behaviour rather than repaired into a two-document transaction.
type UserService struct {
	users    store.UserStore
	thoughts store.ThoughtStore
	logger   *zap.Logger
}

func NewUserService(users store.UserStore, thoughts store.ThoughtStore) *UserService {
	return &UserService{
		users:    users,
		thoughts: thoughts,
		logger:   logger.Get(),
	}
}

type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type UpdateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resolver := newUsernameResolver(s.users)
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		expanded, err := expandUser(ctx, resolver, s.thoughts, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *expanded)
	}
	return out, nil
}

func (s *UserService) GetUser(ctx context.Context, userIDHex string) (*UserResponse, error) {
	userID, err := parseObjectID(userIDHex, "user")
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUserNotFound(userIDHex)
	}
	return expandUser(ctx, newUsernameResolver(s.users), s.thoughts, user)
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := asValidationError(validate.Struct(input)); err != nil {
		return nil, err
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Username: input.Username,
		Email:    input.Email,
		Thoughts: []primitive.ObjectID{},
		Friends:  []primitive.ObjectID{},
	}
	if err := s.users.Insert(ctx, &user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("username", user.Username))
	return expandUser(ctx, newUsernameResolver(s.users), s.thoughts, &user)
}

func (s *UserService) UpdateUser(ctx context.Context, userIDHex string, input UpdateUserInput) (*UserResponse, error) {
	userID, err := parseObjectID(userIDHex, "user")
	if err != nil {
		return nil, err
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" && input.Email == "" {
		return nil, apperrors.NewValidationError("body", "nothing to update")
	}
	if input.Email != "" {
		if err := asValidationError(validate.Var(input.Email, "email")); err != nil {
			return nil, apperrors.NewValidationError("email", "invalid email format")
		}
	}

	updated, err := s.users.UpdateProfile(ctx, userID, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewUserNotFound(userIDHex)
	}
	return expandUser(ctx, newUsernameResolver(s.users), s.thoughts, updated)
}

// DeleteUser removes the user and then sweeps the thoughts collection,
// pulling every reaction the user authored. Authored thoughts themselves are
// left in place. A sweep that touched nothing is an informational note on an
// otherwise successful delete.
func (s *UserService) DeleteUser(ctx context.Context, userIDHex string) (*CascadeReport, error) {
	userID, err := parseObjectID(userIDHex, "user")
	if err != nil {
		return nil, err
	}

	found, err := s.users.Delete(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewUserNotFound(userIDHex)
	}

	report := &CascadeReport{Deleted: userIDHex}
	modified, err := s.thoughts.PullReactionsByAuthor(ctx, userID)
	if err != nil {
		s.logger.Warn("user deleted but thought cleanup failed",
			zap.String("userId", userIDHex), zap.Error(err))
		return report, apperrors.NewPartialCascade("deleteUser",
			"user deleted, but pruning their reactions from thoughts failed")
	}
	report.RecordsTouched = modified
	if modified == 0 {
		report.Note = "user deleted, but no thoughts referenced them"
	}

	s.logger.Info("user deleted",
		zap.String("userId", userIDHex), zap.Int64("thoughtsTouched", modified))
	return report, nil
}

// AddFriend inserts friendID into the user's friend set. Adding a friend who
// is already present is a no-op; adding oneself is rejected.
func (s *UserService) AddFriend(ctx context.Context, userIDHex, friendIDHex string) (*UserResponse, error) {
	user, friendID, err := s.resolveFriendPair(ctx, userIDHex, friendIDHex)
	if err != nil {
		return nil, err
	}
	if user.ID == friendID {
		return nil, apperrors.NewInvalidReference(friendIDHex, "a user cannot befriend themselves")
	}

	if err := s.users.AddFriend(ctx, user.ID, friendID); err != nil {
		return nil, err
	}
	return s.refreshUser(ctx, user.ID, userIDHex)
}

// RemoveFriend pulls friendID from the user's friend set. Removing a
// non-member is a no-op, not an error.
func (s *UserService) RemoveFriend(ctx context.Context, userIDHex, friendIDHex string) (*UserResponse, error) {
	user, friendID, err := s.resolveFriendPair(ctx, userIDHex, friendIDHex)
	if err != nil {
		return nil, err
	}

	if err := s.users.RemoveFriend(ctx, user.ID, friendID); err != nil {
		return nil, err
	}
	return s.refreshUser(ctx, user.ID, userIDHex)
}

func (s *UserService) resolveFriendPair(ctx context.Context, userIDHex, friendIDHex string) (*models.User, primitive.ObjectID, error) {
	userID, err := parseObjectID(userIDHex, "user")
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	friendID, err := parseObjectID(friendIDHex, "user")
	if err != nil {
		return nil, primitive.NilObjectID, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	if user == nil {
		return nil, primitive.NilObjectID, apperrors.NewUserNotFound(userIDHex)
	}

	friend, err := s.users.FindByID(ctx, friendID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	if friend == nil {
		return nil, primitive.NilObjectID, apperrors.NewUserNotFound(friendIDHex)
	}
	return user, friendID, nil
}

func (s *UserService) refreshUser(ctx context.Context, userID primitive.ObjectID, userIDHex string) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUserNotFound(userIDHex)
	}
	return expandUser(ctx, newUsernameResolver(s.users), s.thoughts, user)
}
