package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDuplicateKeyField(t *testing.T) {
	cases := []struct {
		name    string
		message string
		field   string
	}{
		{
			"email index",
			"E11000 duplicate key error collection: social-network-api.users index: email_1 dup key: { email: \"a@x.com\" }",
			"email",
		},
		{
			"username index",
			"E11000 duplicate key error collection: social-network-api.users index: username_1 dup key: { username: \"alice\" }",
			"username",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: tc.message}}}
			assert.Equal(t, tc.field, duplicateKeyField(err))
		})
	}
}
