package repositories

import "errors"

// Store-level outcomes shared by all repositories. Services translate these
// into domain errors; handlers never see them directly.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
