// internal/updater/types.go
package updater

import (
	"context"
	"iter"
	"time"
)

// Phase is the poller's position in one update cycle
type Phase string

const (
	PhaseIdle        Phase = "IDLE"
	PhaseChecking    Phase = "CHECKING"
	PhaseDownloading Phase = "DOWNLOADING"
	PhaseInstalling  Phase = "INSTALLING"
	PhaseReady       Phase = "READY"
)

// EventUpdateReady is published once per installed update
const EventUpdateReady = "update-ready"

// Release describes an available update
type Release struct {
	Version string    `json:"version"`
	URL     string    `json:"url"`
	SHA256  string    `json:"sha256,omitempty"`
	Notes   string    `json:"notes,omitempty"`
	PubDate time.Time `json:"pub_date,omitempty"`
}

// Source checks for and fetches releases
type Source interface {
	// Check returns the newer release, or nil when currentVersion is up to date
	Check(ctx context.Context, currentVersion string) (*Release, error)

	// Download starts fetching the release artifact
	Download(ctx context.Context, release *Release) (Download, error)
}

// Download is an in-flight artifact transfer. Ranging over Progress drives
// the transfer; Err and Path are valid once the sequence is exhausted.
type Download interface {
	// Progress yields (bytes so far, total bytes or -1 when unknown)
	Progress() iter.Seq2[int64, int64]
	Err() error
	Path() string
	Close() error
}

// Installer puts a downloaded artifact in place
type Installer interface {
	Install(ctx context.Context, release *Release, path string) error
}

// Notifier receives the update-ready notification
type Notifier interface {
	NotifyUpdateReady(version string)
}

// Status is a point-in-time view of the poller for diagnostics
type Status struct {
	Phase          Phase     `json:"phase"`
	CurrentVersion string    `json:"current_version"`
	ReadyVersion   string    `json:"ready_version,omitempty"`
	LastCheck      time.Time `json:"last_check,omitempty"`
	LastError      string    `json:"last_error,omitempty"`
	Cycles         int64     `json:"cycles"`
}
