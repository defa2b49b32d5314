package app

import (
	"errors"
	"testing"

	"github.com/petems/clutch/internal/audio"
	"github.com/petems/clutch/internal/config"
	"github.com/petems/clutch/internal/hotkey"
	"github.com/petems/clutch/internal/keys"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing

// mockHotkeys models a platform where combos in taken belong to another
// process. Scripted key presses are resolved against the registrations
// live at retrieval time.
type mockHotkeys struct {
	registered map[int]keys.Combo
	taken      map[keys.Combo]bool
	posted     []int
	presses    []keys.Combo
	quit       bool

	nextCalls   int
	passthrough int
	beforeNext  func(call int)
}

func newMockHotkeys() *mockHotkeys {
	return &mockHotkeys{
		registered: make(map[int]keys.Combo),
		taken:      make(map[keys.Combo]bool),
	}
}

func (m *mockHotkeys) Register(id int, mods, key uint32) error {
	combo := keys.Combo{Key: key, Mods: mods}
	if m.taken[combo] {
		return errors.New("hot key is already registered")
	}
	if _, ok := m.registered[id]; ok {
		return errors.New("id already registered")
	}
	m.registered[id] = combo
	return nil
}

func (m *mockHotkeys) Unregister(id int) error {
	if _, ok := m.registered[id]; !ok {
		return errors.New("not registered")
	}
	delete(m.registered, id)
	return nil
}

func (m *mockHotkeys) Next() (hotkey.Event, error) {
	m.nextCalls++
	if m.beforeNext != nil {
		m.beforeNext(m.nextCalls)
	}
	if m.quit {
		return hotkey.Event{}, hotkey.ErrClosed
	}
	if len(m.posted) > 0 {
		id := m.posted[0]
		m.posted = m.posted[1:]
		return hotkey.Event{Kind: hotkey.KindActivation, ID: id}, nil
	}
	if len(m.presses) == 0 {
		return hotkey.Event{}, hotkey.ErrClosed
	}
	combo := m.presses[0]
	m.presses = m.presses[1:]
	for id, c := range m.registered {
		if c == combo {
			return hotkey.Event{Kind: hotkey.KindActivation, ID: id}, nil
		}
	}
	return hotkey.Event{Kind: hotkey.KindOther}, nil
}

func (m *mockHotkeys) Passthrough(hotkey.Event) { m.passthrough++ }

func (m *mockHotkeys) Post(id int) error {
	m.posted = append(m.posted, id)
	return nil
}

func (m *mockHotkeys) Quit() { m.quit = true }

func (m *mockHotkeys) Close() error { return nil }

func (m *mockHotkeys) ids() []int {
	ids := make([]int, 0, len(m.registered))
	for id := range m.registered {
		ids = append(ids, id)
	}
	return ids
}

type mockSession struct {
	name   string
	muted  bool
	volume float64
}

func (s *mockSession) ProcessName() string           { return s.name }
func (s *mockSession) Muted() (bool, error)          { return s.muted, nil }
func (s *mockSession) SetMuted(muted bool) error     { s.muted = muted; return nil }
func (s *mockSession) Volume() (float64, error)      { return s.volume, nil }
func (s *mockSession) SetVolume(level float64) error { s.volume = level; return nil }
func (s *mockSession) Release()                      {}

type mockSessions struct {
	sessions []*mockSession
}

func (p *mockSessions) Sessions() ([]audio.Session, error) {
	out := make([]audio.Session, len(p.sessions))
	for i, s := range p.sessions {
		out[i] = s
	}
	return out, nil
}

func (p *mockSessions) Close() error { return nil }

// countingAudio records handler calls without touching sessions.
type countingAudio struct {
	muted bool
	calls map[string]int
	panic bool
}

func (c *countingAudio) hit(name string) {
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[name]++
}

func (c *countingAudio) Mute() error   { c.hit("mute"); c.muted = true; return nil }
func (c *countingAudio) Unmute() error { c.hit("unmute"); c.muted = false; return nil }
func (c *countingAudio) Toggle() error {
	c.hit("toggle")
	if c.panic {
		panic("audio backend crashed")
	}
	c.muted = !c.muted
	return nil
}
func (c *countingAudio) Muted() bool           { return c.muted }
func (c *countingAudio) IncreaseVolume() error { c.hit("up"); return nil }
func (c *countingAudio) DecreaseVolume() error { c.hit("down"); return nil }

type recordingStatus struct {
	muted     []bool
	suspended []bool
}

func (r *recordingStatus) SetMuted(muted bool)         { r.muted = append(r.muted, muted) }
func (r *recordingStatus) SetSuspended(suspended bool) { r.suspended = append(r.suspended, suspended) }

func mustSlots(t *testing.T, kb config.Keybindings) []Slot {
	t.Helper()
	slots, err := BuildSlots(kb, "conf.toml")
	require.NoError(t, err)
	return slots
}

func mustCombo(t *testing.T, key, mod string) keys.Combo {
	t.Helper()
	combo, err := keys.ResolveBinding("test", keys.Binding{Key: key, Modifier: mod})
	require.NoError(t, err)
	return combo
}

func newTestApp(t *testing.T, hk hotkey.Provider, ac AudioController, unmuteOnQuit bool, status StatusUpdater) *App {
	t.Helper()
	return New(Config{
		Hotkeys:       hk,
		Audio:         ac,
		Slots:         mustSlots(t, config.Default().Keybindings),
		UnmuteOnQuit:  unmuteOnQuit,
		Logger:        zerolog.Nop(),
		StatusUpdater: status,
	})
}

func TestBuildSlots(t *testing.T) {
	slots := mustSlots(t, config.Default().Keybindings)
	require.Len(t, slots, 5)

	want := []struct {
		id        int
		action    Action
		necessary bool
	}{
		{ToggleID, ActionToggle, false},
		{QuitID, ActionQuit, true},
		{SuspendID, ActionSuspend, true},
		{VolumeUpID, ActionVolumeUp, false},
		{VolumeDownID, ActionVolumeDown, false},
	}
	for i, w := range want {
		assert.Equal(t, w.id, slots[i].ID)
		assert.Equal(t, w.action, slots[i].Action)
		assert.Equal(t, w.necessary, slots[i].Necessary)
	}
	assert.Equal(t, "ctrl+f9", slots[0].Label)
	assert.Equal(t, mustCombo(t, "f9", "ctrl"), slots[0].Combo)
}

func TestBuildSlotsSkipsEmptyVolumeBindings(t *testing.T) {
	kb := config.Default().Keybindings
	kb.VolumeUp = ""
	kb.VolumeDown = " "

	slots := mustSlots(t, kb)
	require.Len(t, slots, 3)
	for _, s := range slots {
		assert.NotEqual(t, ActionVolumeUp, s.Action)
		assert.NotEqual(t, ActionVolumeDown, s.Action)
	}
}

func TestBuildSlotsFailsBeforeRegistering(t *testing.T) {
	kb := config.Default().Keybindings
	kb.SuspendMod = "hyper"

	slots, err := BuildSlots(kb, "conf.toml")
	assert.Nil(t, slots)
	require.ErrorIs(t, err, keys.ErrInvalidKeybinding)

	var ke *keys.InvalidKeybindingError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, "suspend_mod", ke.Field)
	assert.Equal(t, "conf.toml", ke.Source)
}

func TestRegisterAllReportsEveryFailure(t *testing.T) {
	hk := newMockHotkeys()
	hk.taken[mustCombo(t, "f9", "ctrl")] = true
	hk.taken[mustCombo(t, "up", "ctrl+shift")] = true
	a := newTestApp(t, hk, &countingAudio{}, true, nil)

	err := a.RegisterAll()
	require.ErrorIs(t, err, ErrHotkeyRegistrationFailed)

	var re *RegistrationError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []int{ToggleID, VolumeUpID}, re.FailedIDs())
	assert.Contains(t, err.Error(), "ctrl+f9")

	assert.Empty(t, hk.registered, "slots that bound must be released")
	assert.Empty(t, a.Registered())
}

func TestRegisterAll(t *testing.T) {
	hk := newMockHotkeys()
	a := newTestApp(t, hk, &countingAudio{}, true, nil)

	require.NoError(t, a.RegisterAll())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, a.Registered())
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, hk.ids())
}

func TestUnregisterAllIsIdempotent(t *testing.T) {
	hk := newMockHotkeys()
	a := newTestApp(t, hk, &countingAudio{}, true, nil)
	require.NoError(t, a.RegisterAll())

	a.UnregisterAll()
	a.UnregisterAll()

	assert.Empty(t, hk.registered)
	assert.Empty(t, a.Registered())
}

func TestSuspendResumeRestoresSlots(t *testing.T) {
	hk := newMockHotkeys()
	status := &recordingStatus{}
	a := newTestApp(t, hk, &countingAudio{}, true, status)
	require.NoError(t, a.RegisterAll())
	before := a.Registered()

	require.NoError(t, a.Dispatch(SuspendID))
	assert.True(t, a.Suspended())
	assert.Equal(t, []int{QuitID, SuspendID}, a.Registered())
	assert.ElementsMatch(t, []int{QuitID, SuspendID}, hk.ids())

	require.NoError(t, a.Dispatch(SuspendID))
	assert.False(t, a.Suspended())
	assert.Equal(t, before, a.Registered())
	assert.ElementsMatch(t, before, hk.ids())

	assert.Equal(t, []bool{true, false}, status.suspended)
}

func TestSuspendedIgnoresNonNecessaryActions(t *testing.T) {
	hk := newMockHotkeys()
	ac := &countingAudio{}
	a := newTestApp(t, hk, ac, true, nil)
	require.NoError(t, a.RegisterAll())

	a.Suspend()
	require.NoError(t, a.Dispatch(ToggleID))
	require.NoError(t, a.Dispatch(VolumeUpID))

	assert.Zero(t, ac.calls["toggle"])
	assert.Zero(t, ac.calls["up"])
}

func TestResumeFailureIsFatal(t *testing.T) {
	hk := newMockHotkeys()
	a := newTestApp(t, hk, &countingAudio{}, true, nil)
	require.NoError(t, a.RegisterAll())
	a.Suspend()

	// another process grabs the toggle combo while we are suspended
	hk.taken[mustCombo(t, "f9", "ctrl")] = true

	err := a.Dispatch(SuspendID)
	require.ErrorIs(t, err, ErrHotkeyRegistrationFailed)

	var re *RegistrationError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []int{ToggleID}, re.FailedIDs())
}

func TestDispatchUnknownIDIsNoOp(t *testing.T) {
	hk := newMockHotkeys()
	ac := &countingAudio{}
	a := newTestApp(t, hk, ac, true, nil)
	require.NoError(t, a.RegisterAll())

	assert.NoError(t, a.Dispatch(99))
	assert.NoError(t, a.Dispatch(0))
	assert.Empty(t, ac.calls)
	assert.False(t, hk.quit)
}

func TestDispatchRoutesActions(t *testing.T) {
	hk := newMockHotkeys()
	ac := &countingAudio{}
	a := newTestApp(t, hk, ac, true, nil)
	require.NoError(t, a.RegisterAll())

	require.NoError(t, a.Dispatch(ToggleID))
	require.NoError(t, a.Dispatch(VolumeUpID))
	require.NoError(t, a.Dispatch(VolumeDownID))
	require.NoError(t, a.Dispatch(VolumeDownID))

	assert.Equal(t, map[string]int{"toggle": 1, "up": 1, "down": 2}, ac.calls)
}

func TestQuitUnmutesWhenConfigured(t *testing.T) {
	tests := []struct {
		name         string
		unmuteOnQuit bool
		muted        bool
		wantUnmute   int
	}{
		{"muted with flag", true, true, 1},
		{"unmuted with flag", true, false, 0},
		{"muted without flag", false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hk := newMockHotkeys()
			ac := &countingAudio{muted: tt.muted}
			a := newTestApp(t, hk, ac, tt.unmuteOnQuit, nil)
			require.NoError(t, a.RegisterAll())

			require.NoError(t, a.Dispatch(QuitID))

			assert.Equal(t, tt.wantUnmute, ac.calls["unmute"])
			assert.True(t, hk.quit)
			assert.Empty(t, hk.registered)
		})
	}
}

func TestPostMapsActionToSlot(t *testing.T) {
	hk := newMockHotkeys()
	a := newTestApp(t, hk, &countingAudio{}, true, nil)

	require.NoError(t, a.Post(ActionSuspend))
	require.NoError(t, a.Post(ActionQuit))
	assert.Equal(t, []int{SuspendID, QuitID}, hk.posted)

	a = New(Config{Hotkeys: hk, Audio: &countingAudio{}, Logger: zerolog.Nop()})
	assert.Error(t, a.Post(ActionVolumeUp))
}

func TestMultiStatus(t *testing.T) {
	a, b := &recordingStatus{}, &recordingStatus{}
	m := MultiStatus{a, b}

	m.SetMuted(true)
	m.SetSuspended(false)

	for _, r := range []*recordingStatus{a, b} {
		assert.Equal(t, []bool{true}, r.muted)
		assert.Equal(t, []bool{false}, r.suspended)
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "toggle", ActionToggle.String())
	assert.Equal(t, "suspend", ActionSuspend.String())
	assert.Equal(t, "action(42)", Action(42).String())
}
