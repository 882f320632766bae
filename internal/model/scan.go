package model

import "time"

// ScanSource represents where a scan entered the system
type ScanSource string

const (
	ScanSourceAPI     ScanSource = "api"
	ScanSourceMonitor ScanSource = "monitor"
	ScanSourceManual  ScanSource = "manual"
)

// ScanStatus is the outcome of processing one discovered file.
type ScanStatus string

const (
	ScanStatusProcessed ScanStatus = "processed"
	ScanStatusFailed    ScanStatus = "failed"
	ScanStatusSkipped   ScanStatus = "skipped"
)

// ScanEvent represents one file discovery handled by the folder monitor.
type ScanEvent struct {
	Path         string     // Absolute path of the discovered file
	Source       ScanSource // Where the file entered the system
	Status       ScanStatus // Processing outcome
	NoteID       string     // Resulting note ID when processed
	TasksFiled   int        // Tasks extracted from the note
	Error        string     // Short failure reason, empty on success
	DiscoveredAt time.Time  // File creation time reported by the lister
	ProcessedAt  time.Time  // When the monitor finished with the file
}
