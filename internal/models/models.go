// package models defines the base entity shared by every persisted type
package models

import (
	"context"
	"reflect"
)

// Entity is implemented by every persisted type.
//
// Types satisfy it by embedding [BaseEntity]; the promoted Base method returns the embedded value.
type Entity interface {
	Base() *BaseEntity
}

// BaseEntity carries the surrogate key of a persisted entity.
//
// ID is nil for an entity that hasn't been saved to its data storage.
// The storage engine assigns it on insert.
type BaseEntity struct {
	ID *int64 `gorm:"primaryKey;autoIncrement" json:"id,omitempty"`
}

// WithID returns a [BaseEntity] holding id.
func WithID(id int64) BaseEntity {
	return BaseEntity{ID: &id}
}

// Base implements [Entity].
func (b *BaseEntity) Base() *BaseEntity {
	return b
}

// GetID returns the identifier, or nil before the entity is persisted.
func (b *BaseEntity) GetID() *int64 {
	return b.ID
}

// SetID replaces the identifier. A nil id marks the entity as unsaved.
func (b *BaseEntity) SetID(id *int64) {
	b.ID = id
}

// HasID reports whether an identifier has been assigned.
func (b *BaseEntity) HasID() bool {
	return b.ID != nil
}

// HashCode folds the identifier into 32 bits. An entity without an id hashes to 0.
func (b *BaseEntity) HashCode() int32 {
	if b == nil || b.ID == nil {
		return 0
	}
	v := uint64(*b.ID)
	return int32(v ^ (v >> 32))
}

// String renders the identifier as BaseEntity{id=...}.
//
// Embedding types should define their own String built on [ToStringHelper].
func (b *BaseEntity) String() string {
	helper := &StringHelper{name: "BaseEntity"}
	if b == nil {
		return helper.Add("id", nil).String()
	}
	return helper.Add("id", b.ID).String()
}

// Equal reports whether a and b denote the same persisted entity.
//
// Two entities of the exact same type are equal when both carry an id and the ids match.
// Without ids, an entity is only equal to itself. Nil operands and differing types are never equal.
func Equal(a, b Entity) bool {
	if isNil(a) || isNil(b) {
		return false
	}

	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	ab, bb := a.Base(), b.Base()
	if ab == bb {
		return true
	}

	if ab.ID == nil || bb.ID == nil {
		return false
	}
	return *ab.ID == *bb.ID
}

// Hash returns the id-derived hash of e, or 0 for a nil entity.
func Hash(e Entity) int32 {
	if isNil(e) {
		return 0
	}
	return e.Base().HashCode()
}

// isNil reports whether e is an untyped nil or wraps a nil pointer.
func isNil(e Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Repository defines the interface for data access operations.
// Implementations delegate SQL generation and id assignment to the ORM.
type Repository[T Entity] interface {
	Create(ctx context.Context, model T) error                      // Create inserts a new model; the storage engine assigns its id
	Get(ctx context.Context, id int64) (T, error)                   // Get retrieves a model by its id
	Update(ctx context.Context, model T) error                      // Update modifies an existing model
	Delete(ctx context.Context, id int64) error                     // Delete removes a model by its id
	List(ctx context.Context, criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}
