package app

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHotkeyRegistrationFailed is matched by every RegistrationError.
var ErrHotkeyRegistrationFailed = errors.New("hotkey registration failed")

// SlotFailure is one slot the platform refused to bind.
type SlotFailure struct {
	Slot Slot
	Err  error
}

// RegistrationError lists every slot that failed in one registration pass.
type RegistrationError struct {
	Failures []SlotFailure
}

func (e *RegistrationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("id %d (%s, %s): %v", f.Slot.ID, f.Slot.Action, f.Slot.Label, f.Err))
	}
	return "unable to register hotkeys: " + strings.Join(parts, "; ")
}

func (e *RegistrationError) Is(target error) bool {
	return target == ErrHotkeyRegistrationFailed
}

// FailedIDs returns the slot ids that could not be registered.
func (e *RegistrationError) FailedIDs() []int {
	ids := make([]int, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.Slot.ID)
	}
	return ids
}
