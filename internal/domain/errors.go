package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced category, item or info page no longer exists
	ErrNotFound = errors.New("not found")
	// ErrNoItem is returned when pagination runs past either end of a category
	ErrNoItem = errors.New("no item")
	// ErrInvalidLanguage is returned when the input is not a known language name
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrInvalidPhoneOwner is returned when the shared contact does not belong to the sender
	ErrInvalidPhoneOwner = errors.New("contact does not belong to the user")
	// ErrAccessDenied is returned when a privileged command is used without the role
	ErrAccessDenied = errors.New("access required")
)
