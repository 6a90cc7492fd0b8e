package grounding

import "errors"

// ErrSearchUnavailable marks a transport or service failure of a search backend.
var ErrSearchUnavailable = errors.New("search unavailable")
