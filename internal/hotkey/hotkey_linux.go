//go:build linux

package hotkey

import (
	"fmt"
	"sync"
	"time"
)

// X11 modifier bits.
const (
	shiftMask   = 1 << 0
	lockMask    = 1 << 1 // Caps Lock
	controlMask = 1 << 2
	mod1Mask    = 1 << 3 // Alt
	mod2Mask    = 1 << 4 // Num Lock
	mod4Mask    = 1 << 6 // Super

	comboMods = shiftMask | controlMask | mod1Mask | mod4Mask
)

// lockVariants are grabbed alongside every combo so it still fires with
// Caps Lock or Num Lock on.
var lockVariants = []uint32{0, lockMask, mod2Mask, lockMask | mod2Mask}

// pollInterval bounds how long a key press waits in the X queue.
const pollInterval = 10 * time.Millisecond

// display is the part of an X11 connection the provider drives. It is
// only used from the goroutine that owns the provider.
type display interface {
	Keycode(keysym uint32) uint32
	Grab(keycode, mods uint32) error
	Ungrab(keycode, mods uint32)
	// NextKey returns the next queued key event without blocking.
	NextKey() (keyEvent, bool)
	Close()
}

type keyEvent struct {
	Keycode uint32
	State   uint32
	Pressed bool
}

type grab struct {
	keycode uint32
	mods    uint32
}

type x11Provider struct {
	dpy    display
	ids    map[int]grab
	byGrab map[grab]int
	held   map[grab]bool
	ticker *time.Ticker

	posted    chan int
	quitOnce  sync.Once
	quit      chan struct{}
	closeOnce sync.Once
}

// New opens the X display and returns a provider that grabs keys on the
// root window. Key events are polled from the caller's goroutine.
func New() (Provider, error) {
	dpy, err := openDisplay()
	if err != nil {
		return nil, err
	}
	return newX11Provider(dpy), nil
}

func newX11Provider(dpy display) *x11Provider {
	return &x11Provider{
		dpy:    dpy,
		ids:    make(map[int]grab),
		byGrab: make(map[grab]int),
		held:   make(map[grab]bool),
		ticker: time.NewTicker(pollInterval),
		posted: make(chan int, eventBuffer),
		quit:   make(chan struct{}),
	}
}

// Register grabs the combo; key is an X11 keysym.
func (p *x11Provider) Register(id int, mods, key uint32) error {
	if _, ok := p.ids[id]; ok {
		return fmt.Errorf("hotkey id %d already registered", id)
	}

	keycode := p.dpy.Keycode(key)
	if keycode == 0 {
		return fmt.Errorf("register hotkey id=%d: keysym %#x is not on this keyboard", id, key)
	}

	g := grab{keycode: keycode, mods: mods & comboMods}
	if owner, ok := p.byGrab[g]; ok {
		return fmt.Errorf("register hotkey id=%d: combo already bound to id %d: %w", id, owner, ErrComboTaken)
	}

	for i, lock := range lockVariants {
		if err := p.dpy.Grab(g.keycode, g.mods|lock); err != nil {
			for _, done := range lockVariants[:i] {
				p.dpy.Ungrab(g.keycode, g.mods|done)
			}
			return fmt.Errorf("register hotkey id=%d: %w", id, err)
		}
	}

	p.ids[id] = g
	p.byGrab[g] = id
	return nil
}

func (p *x11Provider) Unregister(id int) error {
	g, ok := p.ids[id]
	if !ok {
		return fmt.Errorf("hotkey id %d not registered", id)
	}

	for _, lock := range lockVariants {
		p.dpy.Ungrab(g.keycode, g.mods|lock)
	}
	delete(p.ids, id)
	delete(p.byGrab, g)
	delete(p.held, g)
	return nil
}

func (p *x11Provider) Next() (Event, error) {
	for {
		select {
		case <-p.quit:
			return Event{}, ErrClosed
		default:
		}

		select {
		case id := <-p.posted:
			return Event{Kind: KindActivation, ID: id}, nil
		default:
		}

		if id, ok := p.drain(); ok {
			return Event{Kind: KindActivation, ID: id}, nil
		}

		select {
		case <-p.quit:
			return Event{}, ErrClosed
		case id := <-p.posted:
			return Event{Kind: KindActivation, ID: id}, nil
		case <-p.ticker.C:
		}
	}
}

// drain consumes queued key events until one activates a grab. Holding a
// combo fires once; it fires again only after the key is released.
func (p *x11Provider) drain() (int, bool) {
	for {
		ev, ok := p.dpy.NextKey()
		if !ok {
			return 0, false
		}

		if !ev.Pressed {
			// modifiers may already be up, match the key alone
			for g := range p.held {
				if g.keycode == ev.Keycode {
					delete(p.held, g)
				}
			}
			continue
		}

		g := grab{keycode: ev.Keycode, mods: ev.State & comboMods}
		id, bound := p.byGrab[g]
		if !bound || p.held[g] {
			continue
		}
		p.held[g] = true
		return id, true
	}
}

// Passthrough has nothing to hand back: only grabbed key events arrive.
func (p *x11Provider) Passthrough(Event) {}

func (p *x11Provider) Post(id int) error {
	select {
	case <-p.quit:
		return ErrClosed
	default:
	}

	select {
	case p.posted <- id:
		return nil
	case <-p.quit:
		return ErrClosed
	}
}

func (p *x11Provider) Quit() {
	p.quitOnce.Do(func() { close(p.quit) })
}

func (p *x11Provider) Close() error {
	p.Quit()
	p.closeOnce.Do(func() {
		for id := range p.ids {
			_ = p.Unregister(id)
		}
		p.ticker.Stop()
		p.dpy.Close()
	})
	return nil
}
