// Package hotkey registers system-wide key combinations and delivers their
// activations as events.
package hotkey

import "errors"

// ErrClosed is returned by Next once Quit has been called or the
// platform event queue is gone.
var ErrClosed = errors.New("hotkey: event source closed")

// ErrComboTaken is returned by Register when another program already owns
// the key combination.
var ErrComboTaken = errors.New("hotkey: key combination already in use")

// eventBuffer bounds queued activations waiting for Next.
const eventBuffer = 16

// EventKind distinguishes hotkey activations from other platform events.
type EventKind int

const (
	KindOther EventKind = iota
	KindActivation
)

// Event is one item retrieved from the platform event source.
type Event struct {
	Kind EventKind
	ID   int

	native any // platform message, handed back in Passthrough
}

// Provider defines the interface for global hotkey management.
//
// Register, Unregister, Next and Passthrough must be called from the
// goroutine that created the provider. Post and Quit may be called from
// any goroutine.
type Provider interface {
	Register(id int, mods, key uint32) error
	Unregister(id int) error

	// Next blocks until the next platform event is available.
	Next() (Event, error)
	// Passthrough hands a non-hotkey event back to the platform.
	Passthrough(ev Event)

	// Post queues a synthetic activation of id.
	Post(id int) error
	// Quit makes Next return ErrClosed.
	Quit()

	Close() error
}
