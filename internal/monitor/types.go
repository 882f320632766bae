package monitor

import "time"

// Candidate is one file discovered in the watch folder.
type Candidate struct {
	Path      string    // Absolute path
	Name      string    // Bare filename, matched against the glob
	CreatedAt time.Time // Creation time as reported by the lister
}

// State is the persisted part of the monitor's bookkeeping. The session
// dedup set is deliberately not part of it; across restarts the cutoff
// alone decides what is new.
type State struct {
	LastProcessedTime time.Time `json:"last_processed_time"`
}

// Status is the monitor's lifecycle state.
type Status string

const (
	StatusStopped   Status = "stopped"
	StatusScheduled Status = "scheduled"
	StatusPolling   Status = "polling"
)
