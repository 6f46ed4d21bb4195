package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reaction struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	ReactionBody string             `json:"reactionBody" bson:"reactionBody" validate:"required,min=1,max=280"`
	Username     primitive.ObjectID `json:"username" bson:"username"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
