package services

import (
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsck45/social-network-api/apperrors"
)

var validate = validator.New()

// asValidationError converts a validator failure into the typed
// ValidationError, naming the first offending field.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(lowerFirst(fe.Field()), "failed the "+fe.Tag()+" constraint")
	}
	return apperrors.NewValidationError("body", err.Error())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// parseObjectID parses a hex entity id, rejecting malformed input as an
// invalid reference rather than letting it reach the store.
func parseObjectID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewInvalidReference(hex, "not a well-formed "+what+" id")
	}
	return id, nil
}
