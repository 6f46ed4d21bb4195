package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/models"
)

type MongoThoughtStore struct {
	collection *mongo.Collection
}

func NewMongoThoughtStore(collection *mongo.Collection) *MongoThoughtStore {
	return &MongoThoughtStore{collection: collection}
}

func (s *MongoThoughtStore) Insert(ctx context.Context, thought *models.Thought) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, thought); err != nil {
		return apperrors.NewStoreError("insert thought", err)
	}
	return nil
}

func (s *MongoThoughtStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var thought models.Thought
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&thought)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("find thought", err)
	}
	return &thought, nil
}

func (s *MongoThoughtStore) FindAll(ctx context.Context) ([]models.Thought, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoThoughtStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Thought, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *MongoThoughtStore) findMany(ctx context.Context, filter bson.M) ([]models.Thought, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreError("find thoughts", err)
	}
	defer cursor.Close(ctx)

	var thoughts []models.Thought
	if err := cursor.All(ctx, &thoughts); err != nil {
		return nil, apperrors.NewStoreError("find thoughts", err)
	}
	return thoughts, nil
}

func (s *MongoThoughtStore) UpdateText(ctx context.Context, id primitive.ObjectID, text string) (*models.Thought, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var updated models.Thought
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"thoughtText": text}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("update thought", err)
	}
	return &updated, nil
}

func (s *MongoThoughtStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, apperrors.NewStoreError("delete thought", err)
	}
	return result.DeletedCount > 0, nil
}

func (s *MongoThoughtStore) PushReaction(ctx context.Context, thoughtID primitive.ObjectID, reaction models.Reaction) (*models.Thought, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var updated models.Thought
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": thoughtID},
		bson.M{"$push": bson.M{"reactions": reaction}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("push reaction", err)
	}
	return &updated, nil
}

func (s *MongoThoughtStore) PullReaction(ctx context.Context, thoughtID, reactionID primitive.ObjectID) (*models.Thought, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var updated models.Thought
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": thoughtID},
		bson.M{"$pull": bson.M{"reactions": bson.M{"_id": reactionID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("pull reaction", err)
	}
	return &updated, nil
}

func (s *MongoThoughtStore) PullReactionsByAuthor(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.UpdateMany(
		ctx,
		bson.M{"reactions": bson.M{"$elemMatch": bson.M{"username": userID}}},
		bson.M{"$pull": bson.M{"reactions": bson.M{"username": userID}}},
	)
	if err != nil {
		return 0, apperrors.NewStoreError("pull reactions by author", err)
	}
	return result.ModifiedCount, nil
}
