// Package apperrors defines the typed errors the service layer returns to
// its callers. Lookup and validation failures are always one of these types;
// only unexpected store faults are wrapped in StoreError.
package apperrors

import "fmt"

// Entity names used by NotFoundError and DanglingReferenceError.
const (
	EntityUser     = "user"
	EntityThought  = "thought"
	EntityReaction = "reaction"
)

// NotFoundError is returned when a looked-up entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found with id %s", e.Entity, e.ID)
}

func NewUserNotFound(id string) *NotFoundError {
	return &NotFoundError{Entity: EntityUser, ID: id}
}

func NewThoughtNotFound(id string) *NotFoundError {
	return &NotFoundError{Entity: EntityThought, ID: id}
}

func NewReactionNotFound(id string) *NotFoundError {
	return &NotFoundError{Entity: EntityReaction, ID: id}
}

// ValidationError is returned when an input field fails its constraints.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateKeyError is returned when a unique field would be duplicated.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("a record with this %s already exists", e.Field)
}

func NewDuplicateKey(field string) *DuplicateKeyError {
	return &DuplicateKeyError{Field: field}
}

// InvalidReferenceError is returned when an id is not a well-formed entity id
// or would create a forbidden reference (a user befriending itself).
type InvalidReferenceError struct {
	Value  string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference %q: %s", e.Value, e.Reason)
}

func NewInvalidReference(value, reason string) *InvalidReferenceError {
	return &InvalidReferenceError{Value: value, Reason: reason}
}

// DanglingReferenceError is returned when a read meets a stored id whose
// target entity no longer exists. Reads fail hard on it rather than emitting
// a null in the projection.
type DanglingReferenceError struct {
	Entity string
	ID     string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("stored reference to missing %s %s", e.Entity, e.ID)
}

func NewDanglingReference(entity, id string) *DanglingReferenceError {
	return &DanglingReferenceError{Entity: entity, ID: id}
}

// PartialCascadeError reports that a secondary step of a multi-step mutation
// did not apply. The primary change is committed; callers receive this
// alongside the primary result, never instead of it.
type PartialCascadeError struct {
	Op     string
	Detail string
}

func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func NewPartialCascade(op, detail string) *PartialCascadeError {
	return &PartialCascadeError{Op: op, Detail: detail}
}

// StoreError wraps an unexpected storage fault (connectivity, driver errors).
// Domain conditions are never reported through it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
