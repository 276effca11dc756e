// Package models defines the base entity embedded by every persisted type, plus the sample scaffold entities.
//
// # Identity
//
// [BaseEntity] holds a nullable surrogate key. It is nil until the ORM inserts the row, at which point the
// storage engine assigns it. Types embed it the way a mapped superclass folds its columns into each table:
//
//	type Post struct {
//		models.BaseEntity
//		Title string
//	}
//
// # Equality & Hashing
//
// [Equal] treats two entities as equal only when they have the exact same concrete type and both carry the
// same id. Before persistence an entity is equal to itself alone. [Hash] derives from the id and maps every
// unsaved entity to 0; [Set] relies on both.
//
// # Rendering
//
// [ToStringHelper] starts a Type{id=...} rendering that concrete types extend with their own fields.
//
// # Sample Entities
//   - [User] : Application accounts with activation keys
//   - [Entry] : Dated posts owned by a user
//
// The [Repository] interface defines CRUD operations implemented in internal/repositories.
package models
