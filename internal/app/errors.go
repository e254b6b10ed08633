package service

import "errors"

// Sentinel kinds for widget errors. The validation messages double as
// the exact lines shown to the user.
var (
	ErrNoTeacherSelected = errors.New("please select a teacher first")
	ErrEmptyComment      = errors.New("please write a comment before submitting")
	ErrRatingOutOfRange  = errors.New("please pick a rating between 1 and 10")
	ErrUnknownTeacher    = errors.New("unknown teacher")
	ErrInvalidSort       = errors.New("unknown sort key")
	ErrUnknownCard       = errors.New("unknown stat card")
	ErrAppendFeedback    = errors.New("failed to record feedback")
)
