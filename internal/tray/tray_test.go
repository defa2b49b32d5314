package tray

import (
	"errors"
	"testing"

	"github.com/petems/clutch/internal/app"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingPoster struct {
	actions []app.Action
	err     error
}

func (r *recordingPoster) Post(action app.Action) error {
	r.actions = append(r.actions, action)
	return r.err
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name             string
		muted, suspended bool
		title, tooltip   string
	}{
		{"active unmuted", false, false, "🔊 🟢", "Clutch: unmuted"},
		{"active muted", true, false, "🔇 🟢", "Clutch: muted"},
		{"suspended muted", true, true, "🔇 ⏸️", "Clutch: muted, hotkeys suspended"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, title(tt.muted, tt.suspended))
			assert.Equal(t, tt.tooltip, tooltip(tt.muted, tt.suspended))
		})
	}

	assert.Equal(t, "Unmute", toggleLabel(true))
	assert.Equal(t, "Mute", toggleLabel(false))
	assert.Equal(t, "Resume hotkeys", suspendLabel(true))
	assert.Equal(t, "Suspend hotkeys", suspendLabel(false))
}

// State updates before the tray is ready must only be recorded.
func TestStatusBeforeReady(t *testing.T) {
	u := New(nil, "dev", "unknown", zerolog.Nop())

	assert.NotPanics(t, func() {
		u.SetMuted(true)
		u.SetSuspended(true)
	})
	assert.True(t, u.muted)
	assert.True(t, u.suspended)
}

func TestPostForwardsToApp(t *testing.T) {
	p := &recordingPoster{}
	u := New(nil, "dev", "unknown", zerolog.Nop())
	u.post(app.ActionToggle) // no app yet

	u.SetApp(p)
	u.post(app.ActionSuspend)
	p.err = errors.New("closed")
	u.post(app.ActionQuit)

	assert.Equal(t, []app.Action{app.ActionSuspend, app.ActionQuit}, p.actions)
}
