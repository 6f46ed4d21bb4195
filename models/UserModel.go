package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID   `json:"_id" bson:"_id"`
	Username string               `json:"username" bson:"username" validate:"required"`
	Email    string               `json:"email" bson:"email" validate:"required,email"`
	Thoughts []primitive.ObjectID `json:"thoughts" bson:"thoughts"`
	Friends  []primitive.ObjectID `json:"friends" bson:"friends"`
}

// FriendCount is derived from the friends array, never stored.
func (u *User) FriendCount() int {
	return len(u.Friends)
}
