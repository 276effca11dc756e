package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/scaffold/internal/shared"
)

func TestUser(t *testing.T) {
	t.Run("NewUser", func(t *testing.T) {
		u := NewUser("jdoe", "jdoe@example.com")

		if u.HasID() {
			t.Error("new user should not have an id")
		}
		if u.Activated {
			t.Error("new user should not be activated")
		}
		if len(u.ActivationKey) != 36 {
			t.Errorf("expected uuid activation key, got %q", u.ActivationKey)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			user    *User
			wantErr bool
		}{
			{name: "valid", user: NewUser("jdoe", "jdoe@example.com")},
			{name: "missing login", user: NewUser("", "jdoe@example.com"), wantErr: true},
			{name: "bad email", user: NewUser("jdoe", "not-an-email"), wantErr: true},
			{name: "long login", user: NewUser(strings.Repeat("a", 51), "jdoe@example.com"), wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.user.Validate()
				if (err != nil) != tt.wantErr {
					t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
				if err != nil && !errors.Is(err, shared.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
			})
		}
	})

	t.Run("Activate", func(t *testing.T) {
		u := NewUser("jdoe", "jdoe@example.com")

		if err := u.Activate("wrong"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		if err := u.Activate(u.ActivationKey); err != nil {
			t.Fatalf("failed to activate: %v", err)
		}
		if !u.Activated || u.ActivationKey != "" {
			t.Error("expected user to be activated and key cleared")
		}

		if err := u.Activate("anything"); err != nil {
			t.Errorf("activating an active user should be a no-op, got %v", err)
		}
	})

	t.Run("Equals", func(t *testing.T) {
		a := NewUser("jdoe", "jdoe@example.com")
		b := NewUser("jdoe", "jdoe@example.com")
		if a.Equals(b) {
			t.Error("unsaved users with identical fields should not be equal")
		}

		a.BaseEntity = WithID(1)
		b.BaseEntity = WithID(1)
		if !a.Equals(b) {
			t.Error("users with the same id should be equal")
		}

		entry := &Entry{BaseEntity: WithID(1)}
		if a.Equals(entry) {
			t.Error("a user should never equal an entry")
		}
	})

	t.Run("String", func(t *testing.T) {
		u := NewUser("jdoe", "jdoe@example.com")
		got := u.String()
		want := "User{id=<nil>, login=jdoe, email=jdoe@example.com, activated=false, langKey=en}"
		if got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})
}

func TestEntry(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		if err := NewEntry(1, "Hello", "").Validate(); err != nil {
			t.Errorf("expected valid entry, got %v", err)
		}
		if err := NewEntry(1, "", "").Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation for empty title, got %v", err)
		}
		if err := NewEntry(0, "Hello", "").Validate(); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation for missing owner, got %v", err)
		}
	})

	t.Run("String", func(t *testing.T) {
		e := NewEntry(3, "Hello", "body")
		e.BaseEntity = WithID(8)
		got := e.String()
		if !strings.HasPrefix(got, "Entry{id=8, title=Hello, date=") || !strings.HasSuffix(got, ", userId=3}") {
			t.Errorf("unexpected rendering %q", got)
		}
	})
}
