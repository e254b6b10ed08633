package repository

import "errors"

// Sentinel kinds for feedback log errors.
var (
	ErrDuplicateID = errors.New("feedback id already recorded")
	ErrMissingID   = errors.New("feedback id must be set")
)
