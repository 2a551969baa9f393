package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrCorruptSlot is returned when a stored slot cannot be decoded
	ErrCorruptSlot = errors.New("corrupt slot contents")
)
