package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/logger"
	"github.com/jsck45/social-network-api/models"
	"github.com/jsck45/social-network-api/store"
)

// ThoughtService owns the thought lifecycle: creation against a resolved
// author, text edits, deletion with its user-side cleanup, and the embedded
// reaction sequence.
type ThoughtService struct {
	thoughts store.ThoughtStore
	users    store.UserStore
	logger   *zap.Logger
}

func NewThoughtService(thoughts store.ThoughtStore, users store.UserStore) *ThoughtService {
	return &ThoughtService{
		thoughts: thoughts,
		users:    users,
		logger:   logger.Get(),
	}
}

type CreateThoughtInput struct {
	ThoughtText string `json:"thoughtText" validate:"required,min=1,max=280"`
	Username    string `json:"username" validate:"required"`
}

type AddReactionInput struct {
	ReactionBody string `json:"reactionBody" validate:"required,min=1,max=280"`
	Username     string `json:"username" validate:"required"`
}

func (s *ThoughtService) ListThoughts(ctx context.Context) ([]ThoughtResponse, error) {
	thoughts, err := s.thoughts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resolver := newUsernameResolver(s.users)
	out := make([]ThoughtResponse, 0, len(thoughts))
	for i := range thoughts {
		expanded, err := expandThought(ctx, resolver, &thoughts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *expanded)
	}
	return out, nil
}

func (s *ThoughtService) GetThought(ctx context.Context, thoughtIDHex string) (*ThoughtResponse, error) {
	thoughtID, err := parseObjectID(thoughtIDHex, "thought")
	if err != nil {
		return nil, err
	}

	thought, err := s.thoughts.FindByID(ctx, thoughtID)
	if err != nil {
		return nil, err
	}
	if thought == nil {
		return nil, apperrors.NewThoughtNotFound(thoughtIDHex)
	}
	return expandThought(ctx, newUsernameResolver(s.users), thought)
}

// CreateThought inserts the thought and then appends its id to the author's
// thought list. When the second step fails the thought stays committed and
// the expanded result is returned together with a PartialCascadeError.
func (s *ThoughtService) CreateThought(ctx context.Context, input CreateThoughtInput) (*ThoughtResponse, error) {
	input.ThoughtText = strings.TrimSpace(input.ThoughtText)
	if err := asValidationError(validate.Struct(input)); err != nil {
		return nil, err
	}

	author, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.NewUserNotFound(input.Username)
	}

	thought := models.Thought{
		ID:          primitive.NewObjectID(),
		ThoughtText: input.ThoughtText,
		Username:    author.ID,
		CreatedAt:   time.Now(),
		Reactions:   []models.Reaction{},
	}
	if err := s.thoughts.Insert(ctx, &thought); err != nil {
		return nil, err
	}

	resolver := newUsernameResolver(s.users)
	resolver.prime(author)
	expanded, expandErr := expandThought(ctx, resolver, &thought)
	if expandErr != nil {
		return nil, expandErr
	}

	matched, err := s.users.PushThoughtRef(ctx, author.ID, thought.ID)
	if err != nil || matched == 0 {
		s.logger.Warn("thought created but author's thought list was not updated",
			zap.String("thoughtId", thought.ID.Hex()),
			zap.String("userId", author.ID.Hex()),
			zap.Error(err))
		return expanded, apperrors.NewPartialCascade("createThought",
			"thought created, but the author's thought list was not updated")
	}

	s.logger.Info("thought created",
		zap.String("thoughtId", thought.ID.Hex()),
		zap.String("username", author.Username))
	return expanded, nil
}

func (s *ThoughtService) UpdateThought(ctx context.Context, thoughtIDHex, thoughtText string) (*ThoughtResponse, error) {
	thoughtID, err := parseObjectID(thoughtIDHex, "thought")
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(thoughtText)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("thoughtText", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 280 {
		return nil, apperrors.NewValidationError("thoughtText", "must be at most 280 characters")
	}

	updated, err := s.thoughts.UpdateText(ctx, thoughtID, trimmed)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewThoughtNotFound(thoughtIDHex)
	}
	return expandThought(ctx, newUsernameResolver(s.users), updated)
}

// DeleteThought removes the thought, cascading its embedded reactions, then
// strips the thought id from any user referencing it. The delete stands even
// when that sweep matches nothing; the mismatch comes back as a
// PartialCascadeError next to the report.
func (s *ThoughtService) DeleteThought(ctx context.Context, thoughtIDHex string) (*CascadeReport, error) {
	thoughtID, err := parseObjectID(thoughtIDHex, "thought")
	if err != nil {
		return nil, err
	}

	found, err := s.thoughts.Delete(ctx, thoughtID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewThoughtNotFound(thoughtIDHex)
	}

	report := &CascadeReport{Deleted: thoughtIDHex}
	modified, err := s.users.PullThoughtRef(ctx, thoughtID)
	if err != nil {
		s.logger.Warn("thought deleted but user cleanup failed",
			zap.String("thoughtId", thoughtIDHex), zap.Error(err))
		return report, apperrors.NewPartialCascade("deleteThought",
			"thought deleted, but stripping it from user thought lists failed")
	}
	report.RecordsTouched = modified
	if modified == 0 {
		report.Note = "no user referenced this thought"
		return report, apperrors.NewPartialCascade("deleteThought",
			"thought deleted, but no user referenced it")
	}

	s.logger.Info("thought deleted",
		zap.String("thoughtId", thoughtIDHex), zap.Int64("usersTouched", modified))
	return report, nil
}

// AddReaction appends a freshly minted reaction to the thought's sequence.
// The author may be supplied as a username or as a hex user id.
func (s *ThoughtService) AddReaction(ctx context.Context, thoughtIDHex string, input AddReactionInput) (*ThoughtResponse, error) {
	thoughtID, err := parseObjectID(thoughtIDHex, "thought")
	if err != nil {
		return nil, err
	}
	if err := asValidationError(validate.Struct(input)); err != nil {
		return nil, err
	}

	thought, err := s.thoughts.FindByID(ctx, thoughtID)
	if err != nil {
		return nil, err
	}
	if thought == nil {
		return nil, apperrors.NewThoughtNotFound(thoughtIDHex)
	}

	author, err := s.resolveAuthor(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	reaction := models.Reaction{
		ID:           primitive.NewObjectID(),
		ReactionBody: input.ReactionBody,
		Username:     author.ID,
		CreatedAt:    time.Now(),
	}
	updated, err := s.thoughts.PushReaction(ctx, thoughtID, reaction)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewThoughtNotFound(thoughtIDHex)
	}

	resolver := newUsernameResolver(s.users)
	resolver.prime(author)
	return expandThought(ctx, resolver, updated)
}

// RemoveReaction removes a reaction by exact id match. A reaction id not
// present in the thought's sequence is ReactionNotFound and leaves the
// sequence untouched.
func (s *ThoughtService) RemoveReaction(ctx context.Context, thoughtIDHex, reactionIDHex string) (*ThoughtResponse, error) {
	thoughtID, err := parseObjectID(thoughtIDHex, "thought")
	if err != nil {
		return nil, err
	}
	reactionID, err := parseObjectID(reactionIDHex, "reaction")
	if err != nil {
		return nil, err
	}

	thought, err := s.thoughts.FindByID(ctx, thoughtID)
	if err != nil {
		return nil, err
	}
	if thought == nil {
		return nil, apperrors.NewThoughtNotFound(thoughtIDHex)
	}
	if !thought.HasReaction(reactionID) {
		return nil, apperrors.NewReactionNotFound(reactionIDHex)
	}

	updated, err := s.thoughts.PullReaction(ctx, thoughtID, reactionID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewThoughtNotFound(thoughtIDHex)
	}
	return expandThought(ctx, newUsernameResolver(s.users), updated)
}

// resolveAuthor accepts a username or a hex user id. A well-formed hex id is
// looked up as an id; anything else as a username. Either way an unresolved
// author is UserNotFound, never a store-level fault.
func (s *ThoughtService) resolveAuthor(ctx context.Context, usernameOrID string) (*models.User, error) {
	if id, err := primitive.ObjectIDFromHex(usernameOrID); err == nil {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperrors.NewUserNotFound(usernameOrID)
		}
		return user, nil
	}

	user, err := s.users.FindByUsername(ctx, usernameOrID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUserNotFound(usernameOrID)
	}
	return user, nil
}
