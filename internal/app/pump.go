package app

import (
	"errors"
	"fmt"

	"github.com/petems/clutch/internal/hotkey"
)

// Run registers every hotkey and pumps platform events until the Quit
// action or the event source closes. Registrations are released on every
// exit path, including errors and panics.
func (a *App) Run() error {
	if err := a.RegisterAll(); err != nil {
		return err
	}
	defer a.UnregisterAll()

	if a.status != nil {
		a.status.SetSuspended(false)
		a.status.SetMuted(a.audio.Muted())
	}

	for {
		ev, err := a.hk.Next()
		if errors.Is(err, hotkey.ErrClosed) {
			a.log.Info().Msg("Exiting Clutch.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("retrieve platform event: %w", err)
		}

		if ev.Kind != hotkey.KindActivation {
			a.hk.Passthrough(ev)
			continue
		}
		if err := a.Dispatch(ev.ID); err != nil {
			return err
		}
	}
}
