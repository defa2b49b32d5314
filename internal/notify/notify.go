// Package notify shows desktop notifications when the mute or suspend
// state changes.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
)

const appName = "Clutch"

// notifyFunc matches beeep.Notify.
type notifyFunc func(title, message, appIcon string) error

// Notifier sends system notifications. Only state changes are announced;
// the initial state is unmuted and active.
type Notifier struct {
	enabled bool
	send    notifyFunc
	log     zerolog.Logger

	muted     bool
	suspended bool
}

func New(enabled bool, log zerolog.Logger) *Notifier {
	return &Notifier{
		enabled: enabled,
		send:    func(title, message, appIcon string) error { return beeep.Notify(title, message, appIcon) },
		log:     log,
	}
}

func (n *Notifier) SetMuted(muted bool) {
	if muted == n.muted {
		return
	}
	n.muted = muted
	if muted {
		n.notify("Audio muted")
	} else {
		n.notify("Audio unmuted")
	}
}

func (n *Notifier) SetSuspended(suspended bool) {
	if suspended == n.suspended {
		return
	}
	n.suspended = suspended
	if suspended {
		n.notify("Hotkeys suspended")
	} else {
		n.notify("Hotkeys active")
	}
}

func (n *Notifier) notify(message string) {
	if !n.enabled {
		return
	}
	// notification failures are not critical
	if err := n.send(appName, message, ""); err != nil {
		n.log.Debug().Err(err).Msg("Notification failed")
	}
}
