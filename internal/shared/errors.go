package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Persistence errors
	ErrNotFound         = fmt.Errorf("entity not found")
	ErrAlreadyPersisted = fmt.Errorf("entity already has an id")
	ErrNotPersisted     = fmt.Errorf("entity has no id")
	ErrValidation       = fmt.Errorf("validation failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
