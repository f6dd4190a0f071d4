package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrSessionNotActive = errors.New("session is not active")
	ErrNoDraft          = errors.New("no recipe is being edited")
	ErrInvalidRecipe    = errors.New("recipe is incomplete")
	ErrIncomplete       = errors.New("ingredient is missing name, amount or unit")
	ErrDuplicate        = errors.New("duplicate entry")
	ErrOutOfBounds      = errors.New("move out of bounds")
	ErrUnknownUnit      = errors.New("unknown unit")
)
