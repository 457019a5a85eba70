package repository

import "errors"

// Sentinel kinds for index errors.
var (
	ErrFrozen   = errors.New("index is frozen")
	ErrNotFound = errors.New("city not found")
)
