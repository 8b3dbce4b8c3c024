package notifications

import "errors"

var (
	ErrValidation = errors.New("notifications: invalid input")
	ErrNotFound   = errors.New("notifications: not found")
	ErrDuplicate  = errors.New("notifications: already scheduled")
)
