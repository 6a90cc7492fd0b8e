package model

// Scope identifies who a request is acting for.
type Scope struct {
	UserID string // platform user id, also the session id
	Source string // "user", "group" or "room"
}
