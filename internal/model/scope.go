package model

// Scope carries the caller identity through use case boundaries.
type Scope struct {
	UserID   string // Caller identity (e.g. "api_<key-id>", "monitor")
	Username string // Display name when known
	Source   string // Originating surface: api, monitor, manual
}
