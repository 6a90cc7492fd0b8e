package session

import "errors"

var ErrInvalidCapacity = errors.New("session capacity must be positive")
