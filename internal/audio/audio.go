// Package audio controls per-process audio sessions: muting everything
// outside a whitelist and stepping the volume of a music player.
package audio

import "errors"

// ErrNoMatchingSession is returned when no live session belongs to the
// requested process.
var ErrNoMatchingSession = errors.New("no matching audio session")

// Session is one per-process audio stream in the system mixer.
type Session interface {
	// ProcessName is the executable base name, or "" for sessions not
	// owned by a single process (e.g. system sounds).
	ProcessName() string
	Muted() (bool, error)
	SetMuted(muted bool) error
	// Volume is the session level in [0, 1].
	Volume() (float64, error)
	SetVolume(level float64) error
	Release()
}

// Provider enumerates the live audio sessions. Every call reflects the
// mixer state at call time.
type Provider interface {
	Sessions() ([]Session, error)
	Close() error
}

// SessionInfo is a point-in-time view of a session.
type SessionInfo struct {
	Process string
	Muted   bool
	Volume  float64
}

func clamp(level float64) float64 {
	switch {
	case level != level: // NaN
		return 0
	case level < 0:
		return 0
	case level > 1:
		return 1
	}
	return level
}

func releaseAll(sessions []Session) {
	for _, s := range sessions {
		s.Release()
	}
}
