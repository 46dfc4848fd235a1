package documents

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnreadable   = errors.New("file unreadable")
)
