package view

import "errors"

var (
	// ErrNotLoaded is returned when an operation needs the initial load.
	ErrNotLoaded = errors.New("view has not been loaded")

	// ErrUnknownCharacter is returned when a character id is not part of
	// the current character set.
	ErrUnknownCharacter = errors.New("character is not in the current view")

	// ErrNoLocation is returned when a character has no dereferenceable
	// location.
	ErrNoLocation = errors.New("character has no known location")
)
