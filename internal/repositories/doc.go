// Package repositories implements SQLite persistence for all domain entities through gorm.
//
// The repositories are the ORM collaborator that [models.BaseEntity] is written against: ids are never
// generated here. An entity passed to Create must be unsaved; gorm omits its nil id from the INSERT and
// copies the AUTOINCREMENT value the storage engine assigns back into the entity. Update and Delete only
// accept persisted ids.
//
// Key Implementations:
//   - [UserRepository] : User accounts with login-based lookups
//   - [EntryRepository] : Entries filtered by owner
//
// [Open] wraps the *sql.DB produced by shared.NewDatabase, so the tables come from the embedded SQL
// migrations rather than gorm's AutoMigrate.
package repositories
