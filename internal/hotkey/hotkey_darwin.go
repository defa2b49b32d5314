//go:build darwin

package hotkey

import (
	"fmt"
	"math/bits"
	"sync"

	"golang.design/x/hotkey"
)

type registration struct {
	hk   *hotkey.Hotkey
	stop chan struct{}
	done chan struct{}
}

type desktopProvider struct {
	regs   map[int]*registration
	events chan Event

	quitOnce sync.Once
	quit     chan struct{}
}

// New creates a hotkey provider backed by golang.design/x/hotkey (Carbon).
func New() (Provider, error) {
	return &desktopProvider{
		regs:   make(map[int]*registration),
		events: make(chan Event, eventBuffer),
		quit:   make(chan struct{}),
	}, nil
}

// splitModifiers turns a modifier mask back into the per-flag slice
// hotkey.New expects.
func splitModifiers(mask uint32) []hotkey.Modifier {
	mods := make([]hotkey.Modifier, 0, bits.OnesCount32(mask))
	for mask != 0 {
		bit := mask & -mask
		mods = append(mods, hotkey.Modifier(bit))
		mask &^= bit
	}
	return mods
}

func (p *desktopProvider) Register(id int, mods, key uint32) error {
	if _, ok := p.regs[id]; ok {
		return fmt.Errorf("hotkey id %d already registered", id)
	}

	hk := hotkey.New(splitModifiers(mods), hotkey.Key(key))
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey id=%d: %w", id, err)
	}

	reg := &registration{
		hk:   hk,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	p.regs[id] = reg
	go p.forward(id, reg)
	return nil
}

// forward copies key-down events of one hotkey into the shared queue.
func (p *desktopProvider) forward(id int, reg *registration) {
	defer close(reg.done)
	for {
		select {
		case <-reg.stop:
			return
		case _, ok := <-reg.hk.Keydown():
			if !ok {
				return
			}
			select {
			case p.events <- Event{Kind: KindActivation, ID: id}:
			case <-reg.stop:
				return
			}
		}
	}
}

func (p *desktopProvider) Unregister(id int) error {
	reg, ok := p.regs[id]
	if !ok {
		return fmt.Errorf("hotkey id %d not registered", id)
	}
	delete(p.regs, id)

	close(reg.stop)
	<-reg.done
	return reg.hk.Unregister()
}

func (p *desktopProvider) Next() (Event, error) {
	select {
	case <-p.quit:
		return Event{}, ErrClosed
	default:
	}

	select {
	case ev := <-p.events:
		return ev, nil
	case <-p.quit:
		return Event{}, ErrClosed
	}
}

// Passthrough has nothing to hand back: only hotkey events are queued.
func (p *desktopProvider) Passthrough(Event) {}

func (p *desktopProvider) Post(id int) error {
	select {
	case <-p.quit:
		return ErrClosed
	default:
	}

	select {
	case p.events <- Event{Kind: KindActivation, ID: id}:
		return nil
	case <-p.quit:
		return ErrClosed
	}
}

func (p *desktopProvider) Quit() {
	p.quitOnce.Do(func() { close(p.quit) })
}

func (p *desktopProvider) Close() error {
	p.Quit()
	var firstErr error
	for id := range p.regs {
		if err := p.Unregister(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
