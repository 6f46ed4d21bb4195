package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thought is a top-level document. Its reactions are embedded subdocuments
// owned exclusively by the thought; they have no standalone collection.
// The username field holds the author's user id, matching the stored schema.
type Thought struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	ThoughtText string             `json:"thoughtText" bson:"thoughtText" validate:"required,min=1,max=280"`
	Username    primitive.ObjectID `json:"username" bson:"username"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	Reactions   []Reaction         `json:"reactions" bson:"reactions"`
}

// ReactionCount is derived from the reactions array, never stored.
func (t *Thought) ReactionCount() int {
	return len(t.Reactions)
}

func (t *Thought) HasReaction(id primitive.ObjectID) bool {
	for _, r := range t.Reactions {
		if r.ID == id {
			return true
		}
	}
	return false
}
