package flex

import "errors"

// ErrInvalidDate is returned when a date string is not a valid YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// ErrIncompleteEntry indicates a time entry came back without an hours value.
var ErrIncompleteEntry = errors.New("time entry has no hours")
