package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/models"
)

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(collection *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{collection: collection}
}

// EnsureIndexes creates the unique indexes backing the username and email
// constraints.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return apperrors.NewStoreError("ensure user indexes", err)
	}
	return nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// check duplicates up front so the offending field can be named; the
	// unique index remains the backstop under concurrent inserts
	var found models.User
	err := s.collection.FindOne(ctx, bson.M{"username": user.Username}).Decode(&found)
	if err == nil {
		return apperrors.NewDuplicateKey("username")
	}
	if err != mongo.ErrNoDocuments {
		return apperrors.NewStoreError("insert user", err)
	}

	err = s.collection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&found)
	if err == nil {
		return apperrors.NewDuplicateKey("email")
	}
	if err != mongo.ErrNoDocuments {
		return apperrors.NewStoreError("insert user", err)
	}

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewDuplicateKey(duplicateKeyField(err))
		}
		return apperrors.NewStoreError("insert user", err)
	}
	return nil
}

// duplicateKeyField names the unique index that fired. The server reports the
// violated index ("username_1" or "email_1") in the write error message.
func duplicateKeyField(err error) string {
	if strings.Contains(err.Error(), "email") {
		return "email"
	}
	return "username"
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("find user", err)
	}
	return &user, nil
}

func (s *MongoUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *MongoUserStore) findMany(ctx context.Context, filter bson.M) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreError("find users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.NewStoreError("find users", err)
	}
	return users, nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{}
	if username != "" {
		var found models.User
		err := s.collection.FindOne(ctx, bson.M{"username": username, "_id": bson.M{"$ne": id}}).Decode(&found)
		if err == nil {
			return nil, apperrors.NewDuplicateKey("username")
		}
		if err != mongo.ErrNoDocuments {
			return nil, apperrors.NewStoreError("update user", err)
		}
		set["username"] = username
	}
	if email != "" {
		var found models.User
		err := s.collection.FindOne(ctx, bson.M{"email": email, "_id": bson.M{"$ne": id}}).Decode(&found)
		if err == nil {
			return nil, apperrors.NewDuplicateKey("email")
		}
		if err != mongo.ErrNoDocuments {
			return nil, apperrors.NewStoreError("update user", err)
		}
		set["email"] = email
	}
	if len(set) == 0 {
		return s.findOne(ctx, bson.M{"_id": id})
	}

	var updated models.User
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewDuplicateKey(duplicateKeyField(err))
		}
		return nil, apperrors.NewStoreError("update user", err)
	}
	return &updated, nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, apperrors.NewStoreError("delete user", err)
	}
	return result.DeletedCount > 0, nil
}

func (s *MongoUserStore) PushThoughtRef(ctx context.Context, userID, thoughtID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"thoughts": thoughtID}},
	)
	if err != nil {
		return 0, apperrors.NewStoreError("push thought ref", err)
	}
	return result.MatchedCount, nil
}

func (s *MongoUserStore) PullThoughtRef(ctx context.Context, thoughtID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.collection.UpdateMany(
		ctx,
		bson.M{"thoughts": thoughtID},
		bson.M{"$pull": bson.M{"thoughts": thoughtID}},
	)
	if err != nil {
		return 0, apperrors.NewStoreError("pull thought ref", err)
	}
	return result.ModifiedCount, nil
}

func (s *MongoUserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"friends": friendID}},
	)
	if err != nil {
		return apperrors.NewStoreError("add friend", err)
	}
	return nil
}

func (s *MongoUserStore) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"friends": friendID}},
	)
	if err != nil {
		return apperrors.NewStoreError("remove friend", err)
	}
	return nil
}
