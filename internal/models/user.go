package models

import (
	"fmt"

	"github.com/desertthunder/scaffold/internal/shared"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User is an application account.
type User struct {
	BaseEntity
	Login         string `gorm:"uniqueIndex" json:"login" validate:"required,max=50"`
	Email         string `json:"email" validate:"required,email,max=254"`
	FirstName     string `json:"firstName,omitempty" validate:"max=50"`
	LastName      string `json:"lastName,omitempty" validate:"max=50"`
	Activated     bool   `json:"activated"`
	ActivationKey string `json:"-" validate:"max=36"`
	LangKey       string `json:"langKey,omitempty" validate:"omitempty,min=2,max=10"`
}

// NewUser creates an inactive, unsaved user with a fresh activation key.
func NewUser(login, email string) *User {
	return &User{
		Login:         login,
		Email:         email,
		LangKey:       "en",
		ActivationKey: shared.GenerateKey(),
	}
}

// Activate marks the user active if key matches the pending activation key.
func (u *User) Activate(key string) error {
	if u.Activated {
		return nil
	}
	if u.ActivationKey == "" || key != u.ActivationKey {
		return fmt.Errorf("%w: activation key mismatch", shared.ErrInvalidInput)
	}

	u.Activated = true
	u.ActivationKey = ""
	return nil
}

// Validate checks field constraints.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	return nil
}

// Equals reports whether other is the same persisted user.
func (u *User) Equals(other Entity) bool {
	return Equal(u, other)
}

func (u *User) String() string {
	return ToStringHelper(u).
		Add("login", u.Login).
		Add("email", u.Email).
		Add("activated", u.Activated).
		Add("langKey", u.LangKey).
		String()
}
