package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petems/clutch/internal/config"
	"github.com/petems/clutch/internal/keys"
)

// Action is the closed set of things a hotkey can do.
type Action int

const (
	ActionToggle Action = iota + 1
	ActionVolumeUp
	ActionVolumeDown
	ActionQuit
	ActionSuspend
)

func (a Action) String() string {
	switch a {
	case ActionToggle:
		return "toggle"
	case ActionVolumeUp:
		return "volume_up"
	case ActionVolumeDown:
		return "volume_down"
	case ActionQuit:
		return "quit"
	case ActionSuspend:
		return "suspend"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Slot ids are fixed per action for the life of the process.
const (
	ToggleID     = 1
	QuitID       = 2
	SuspendID    = 3
	VolumeUpID   = 4
	VolumeDownID = 5
)

// Slot is one hotkey binding. Necessary slots stay registered while
// suspended so the user can always quit or resume.
type Slot struct {
	ID        int
	Action    Action
	Combo     keys.Combo
	Label     string
	Necessary bool
}

// BuildSlots resolves every configured binding before anything is
// registered. Optional volume bindings with an empty key are skipped.
// source names the configuration file in error messages.
func BuildSlots(kb config.Keybindings, source string) ([]Slot, error) {
	bindings := []struct {
		id        int
		action    Action
		field     string
		binding   keys.Binding
		necessary bool
		optional  bool
	}{
		{ToggleID, ActionToggle, "toggle", keys.Binding{Key: kb.Toggle, Modifier: kb.ToggleMod}, false, false},
		{QuitID, ActionQuit, "quit", keys.Binding{Key: kb.Quit, Modifier: kb.QuitMod}, true, false},
		{SuspendID, ActionSuspend, "suspend", keys.Binding{Key: kb.Suspend, Modifier: kb.SuspendMod}, true, false},
		{VolumeUpID, ActionVolumeUp, "volume_up", keys.Binding{Key: kb.VolumeUp, Modifier: kb.VolumeUpMod}, false, true},
		{VolumeDownID, ActionVolumeDown, "volume_down", keys.Binding{Key: kb.VolumeDown, Modifier: kb.VolumeDownMod}, false, true},
	}

	slots := make([]Slot, 0, len(bindings))
	for _, s := range bindings {
		if s.optional && strings.TrimSpace(s.binding.Key) == "" {
			continue
		}
		if s.binding.Modifier == "" {
			s.binding.Modifier = "none"
		}
		combo, err := keys.ResolveBinding(s.field, s.binding)
		if err != nil {
			var ke *keys.InvalidKeybindingError
			if errors.As(err, &ke) {
				ke.Source = source
			}
			return nil, err
		}
		slots = append(slots, Slot{
			ID:        s.id,
			Action:    s.action,
			Combo:     combo,
			Label:     keys.Describe(s.binding),
			Necessary: s.necessary,
		})
	}
	return slots, nil
}
