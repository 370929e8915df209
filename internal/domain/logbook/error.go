package logbook

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("log not found")
	ErrInvalidData  = errors.New("invalid log data")
	ErrForeignOwner = errors.New("log belongs to another user")
)
