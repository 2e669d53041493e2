package domain

import "errors"

// Watch registry errors
var (
	ErrInvalidHour      = errors.New("hour index must be between 0 and 23")
	ErrAlreadyCommitted = errors.New("user has already committed to a watch")
	ErrAlreadyPosted    = errors.New("user is already posted on this watch")
	ErrWatchNotFound    = errors.New("watch commitment not found")
)

// Prayer wall errors
var (
	ErrPrayerNotFound = errors.New("prayer not found")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrContentTooLong = errors.New("content is too long")
)
