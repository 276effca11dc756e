package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/scaffold/internal/shared"
)

// Entry is a dated post owned by a [User].
//
// UserID is a plain column; loading the owner is left to the caller.
type Entry struct {
	BaseEntity
	Title   string    `json:"title" validate:"required,max=255"`
	Content string    `json:"content,omitempty"`
	Date    time.Time `json:"date"`
	UserID  int64     `json:"userId" validate:"required"`
}

// NewEntry creates an unsaved entry dated now.
func NewEntry(userID int64, title, content string) *Entry {
	return &Entry{
		Title:   title,
		Content: content,
		Date:    time.Now().UTC(),
		UserID:  userID,
	}
}

// Validate checks field constraints.
func (e *Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

// Equals reports whether other is the same persisted entry.
func (e *Entry) Equals(other Entity) bool {
	return Equal(e, other)
}

func (e *Entry) String() string {
	return ToStringHelper(e).
		Add("title", e.Title).
		Add("date", e.Date.Format(time.RFC3339)).
		Add("userId", e.UserID).
		String()
}
