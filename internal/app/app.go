package app

import (
	"fmt"
	"sort"

	"github.com/petems/clutch/internal/hotkey"
	"github.com/rs/zerolog"
)

// AudioController is the part of audio.Controller the handlers use.
type AudioController interface {
	Mute() error
	Unmute() error
	Toggle() error
	Muted() bool
	IncreaseVolume() error
	DecreaseVolume() error
}

// StatusUpdater is an interface for updating status (e.g., tray icon)
type StatusUpdater interface {
	SetMuted(muted bool)
	SetSuspended(suspended bool)
}

type Config struct {
	Hotkeys       hotkey.Provider
	Audio         AudioController
	Slots         []Slot
	UnmuteOnQuit  bool
	Logger        zerolog.Logger
	StatusUpdater StatusUpdater // Optional - can be nil
}

// App is the hotkey dispatcher. Apart from Post, its methods must be
// called from the goroutine that owns the hotkey provider.
type App struct {
	hk           hotkey.Provider
	audio        AudioController
	slots        []Slot
	byID         map[int]Slot
	unmuteOnQuit bool
	log          zerolog.Logger
	status       StatusUpdater

	registered map[int]bool
	suspended  bool
}

func New(cfg Config) *App {
	slots := append([]Slot(nil), cfg.Slots...)
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })

	byID := make(map[int]Slot, len(slots))
	for _, s := range slots {
		byID[s.ID] = s
	}

	return &App{
		hk:           cfg.Hotkeys,
		audio:        cfg.Audio,
		slots:        slots,
		byID:         byID,
		unmuteOnQuit: cfg.UnmuteOnQuit,
		log:          cfg.Logger,
		status:       cfg.StatusUpdater,
		registered:   make(map[int]bool, len(slots)),
	}
}

// RegisterAll binds every slot. All slots are attempted so the error
// lists every failure; on failure the slots that did bind are released.
func (a *App) RegisterAll() error {
	if err := a.register(func(Slot) bool { return true }); err != nil {
		a.UnregisterAll()
		return err
	}
	a.log.Info().Msg("All hotkeys were successfully registered.")
	return nil
}

func (a *App) register(include func(Slot) bool) error {
	var failures []SlotFailure
	for _, s := range a.slots {
		if !include(s) || a.registered[s.ID] {
			continue
		}
		a.log.Debug().Int("id", s.ID).Str("action", s.Action.String()).Str("key", s.Label).Msg("Registering hotkey")
		if err := a.hk.Register(s.ID, s.Combo.Mods, s.Combo.Key); err != nil {
			a.log.Error().Err(err).Int("id", s.ID).Str("key", s.Label).
				Msg("Unable to register hotkey. This key may be unavailable for keybinding. Is clutch already running?")
			failures = append(failures, SlotFailure{Slot: s, Err: err})
			continue
		}
		a.registered[s.ID] = true
	}
	if len(failures) > 0 {
		return &RegistrationError{Failures: failures}
	}
	return nil
}

// UnregisterAll releases every registered slot. Safe to call repeatedly.
func (a *App) UnregisterAll() {
	for _, s := range a.slots {
		a.unregister(s)
	}
}

func (a *App) unregister(s Slot) {
	if !a.registered[s.ID] {
		return
	}
	if err := a.hk.Unregister(s.ID); err != nil {
		a.log.Debug().Err(err).Int("id", s.ID).Msg("Unregister failed")
	}
	delete(a.registered, s.ID)
}

// Suspend releases every non-necessary slot.
func (a *App) Suspend() {
	if a.suspended {
		return
	}
	for _, s := range a.slots {
		if !s.Necessary {
			a.unregister(s)
		}
	}
	a.suspended = true
	a.log.Info().Msg("Application has been suspended.")
	if a.status != nil {
		a.status.SetSuspended(true)
	}
}

// Resume re-registers the slots released by Suspend. A failure is fatal
// to the caller; a partial hotkey set is not a running state.
func (a *App) Resume() error {
	if !a.suspended {
		return nil
	}
	a.suspended = false
	if err := a.register(func(s Slot) bool { return !s.Necessary }); err != nil {
		return err
	}
	a.log.Info().Msg("Application has been unsuspended.")
	if a.status != nil {
		a.status.SetSuspended(false)
	}
	return nil
}

func (a *App) Suspended() bool { return a.suspended }

// Registered returns the ids currently bound, ascending.
func (a *App) Registered() []int {
	ids := make([]int, 0, len(a.registered))
	for _, s := range a.slots {
		if a.registered[s.ID] {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Dispatch runs the handler bound to id. Ids that are unknown or not
// currently registered are ignored. Only errors that must end the
// process are returned.
func (a *App) Dispatch(id int) error {
	slot, ok := a.byID[id]
	if !ok || !a.registered[id] {
		a.log.Debug().Int("id", id).Msg("Ignoring activation")
		return nil
	}

	switch slot.Action {
	case ActionToggle:
		a.handleToggle()
	case ActionVolumeUp:
		a.audioErr(a.audio.IncreaseVolume(), "Failed to increase volume")
	case ActionVolumeDown:
		a.audioErr(a.audio.DecreaseVolume(), "Failed to decrease volume")
	case ActionQuit:
		a.handleQuit()
	case ActionSuspend:
		return a.handleSuspend()
	default:
		return fmt.Errorf("slot %d has unknown action %v", id, slot.Action)
	}
	return nil
}

// Post queues action for the dispatcher from any goroutine.
func (a *App) Post(action Action) error {
	for _, s := range a.slots {
		if s.Action == action {
			return a.hk.Post(s.ID)
		}
	}
	return fmt.Errorf("no hotkey bound to %s", action)
}

func (a *App) handleToggle() {
	a.audioErr(a.audio.Toggle(), "Failed to toggle audio")
	a.publishMuted()
}

func (a *App) handleQuit() {
	if a.unmuteOnQuit {
		if a.audio.Muted() {
			a.log.Info().Msg("Unmuting all processes before closing the application.")
			a.audioErr(a.audio.Unmute(), "Failed to unmute")
			a.publishMuted()
		} else {
			a.log.Info().Msg("All processes already unmuted.")
		}
	}
	a.UnregisterAll()
	a.hk.Quit()
}

func (a *App) handleSuspend() error {
	if a.suspended {
		return a.Resume()
	}
	a.Suspend()
	return nil
}

func (a *App) publishMuted() {
	if a.status != nil {
		a.status.SetMuted(a.audio.Muted())
	}
}

func (a *App) audioErr(err error, msg string) {
	if err != nil {
		a.log.Error().Err(err).Msg(msg)
	}
}
