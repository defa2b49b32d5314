package tray

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
	"github.com/petems/clutch/internal/app"
	"github.com/rs/zerolog"
)

// Poster queues an action for the hotkey dispatcher.
type Poster interface {
	Post(action app.Action) error
}

type UI struct {
	app     Poster
	version string
	commit  string
	log     zerolog.Logger

	mu        sync.Mutex
	ready     bool
	muted     bool
	suspended bool

	// Menu items
	mToggle  *systray.MenuItem
	mSuspend *systray.MenuItem
	mQuit    *systray.MenuItem
}

func New(poster Poster, version, commit string, log zerolog.Logger) *UI {
	return &UI{
		app:     poster,
		version: version,
		commit:  commit,
		log:     log,
	}
}

// SetApp sets the app reference (for circular dependency resolution)
func (u *UI) SetApp(poster Poster) {
	u.app = poster
}

// Supported reports whether the tray can run off the main thread here.
func Supported() bool {
	return runtime.GOOS != "darwin"
}

// Start runs the tray loop on its own OS thread and returns immediately.
func (u *UI) Start() {
	go func() {
		runtime.LockOSThread()
		systray.Run(u.onReady, u.onExit)
	}()
}

// Stop removes the tray icon.
func (u *UI) Stop() {
	systray.Quit()
}

// Status update methods for the app to call

func (u *UI) SetMuted(muted bool) {
	u.mu.Lock()
	u.muted = muted
	u.mu.Unlock()
	u.refresh()
}

func (u *UI) SetSuspended(suspended bool) {
	u.mu.Lock()
	u.suspended = suspended
	u.mu.Unlock()
	u.refresh()
}

func (u *UI) onReady() {
	systray.SetTooltip("Clutch - global audio hotkeys")

	u.mToggle = systray.AddMenuItem(toggleLabel(false), "Mute or unmute every non-whitelisted app")
	u.mSuspend = systray.AddMenuItem(suspendLabel(false), "Release all hotkeys except quit and suspend")
	systray.AddSeparator()
	mAbout := systray.AddMenuItem(fmt.Sprintf("Clutch %s (%s)", u.version, u.commit), "")
	mAbout.Disable()
	u.mQuit = systray.AddMenuItem("Quit", "Exit application")

	u.mu.Lock()
	u.ready = true
	u.mu.Unlock()
	u.refresh()

	// Event loop
	go u.handleEvents()
}

func (u *UI) handleEvents() {
	for {
		select {
		case <-u.mToggle.ClickedCh:
			u.post(app.ActionToggle)
		case <-u.mSuspend.ClickedCh:
			u.post(app.ActionSuspend)
		case <-u.mQuit.ClickedCh:
			u.post(app.ActionQuit)
			return
		}
	}
}

func (u *UI) post(action app.Action) {
	if u.app == nil {
		return
	}
	if err := u.app.Post(action); err != nil {
		u.log.Error().Err(err).Str("action", action.String()).Msg("Tray action failed")
	}
}

func (u *UI) onExit() {
	// Cleanup
}

// refresh pushes the current state into the tray title and menu.
func (u *UI) refresh() {
	u.mu.Lock()
	ready, muted, suspended := u.ready, u.muted, u.suspended
	u.mu.Unlock()
	if !ready {
		return
	}

	systray.SetTitle(title(muted, suspended))
	systray.SetTooltip(tooltip(muted, suspended))
	u.mToggle.SetTitle(toggleLabel(muted))
	u.mSuspend.SetTitle(suspendLabel(suspended))
	if suspended {
		u.mToggle.Disable()
	} else {
		u.mToggle.Enable()
	}
}

func title(muted, suspended bool) string {
	return fmt.Sprintf("%s %s", emojiForMute(muted), emojiForSuspend(suspended))
}

func tooltip(muted, suspended bool) string {
	state := "unmuted"
	if muted {
		state = "muted"
	}
	if suspended {
		return "Clutch: " + state + ", hotkeys suspended"
	}
	return "Clutch: " + state
}

func toggleLabel(muted bool) string {
	if muted {
		return "Unmute"
	}
	return "Mute"
}

func suspendLabel(suspended bool) string {
	if suspended {
		return "Resume hotkeys"
	}
	return "Suspend hotkeys"
}

func emojiForMute(muted bool) string {
	if muted {
		return "🔇"
	}
	return "🔊"
}

func emojiForSuspend(suspended bool) string {
	if suspended {
		return "⏸️"
	}
	return "🟢"
}
