//go:build linux

package keys

// X11 modifier masks.
const (
	ModShift uint32 = 1 << 0
	ModCtrl  uint32 = 1 << 2
	ModAlt   uint32 = 1 << 3 // Mod1
	ModWin   uint32 = 1 << 6 // Mod4
)

// platformKeyCodes returns X11 keysyms; the provider maps them to the
// keycodes of the running server.
func platformKeyCodes() map[string]uint32 {
	codes := map[string]uint32{
		"space":  0x0020, // XK_space
		"return": 0xff0d,
		"enter":  0xff0d,
		"tab":    0xff09,
		"escape": 0xff1b,
		"esc":    0xff1b,
		"delete": 0xffff,
		"left":   0xff51,
		"up":     0xff52,
		"right":  0xff53,
		"down":   0xff54,
	}
	addRun(codes, '0', '9', 0x0030)
	addRun(codes, 'a', 'z', 0x0061)
	addFunctionKeys(codes, 0xffbe)
	return codes
}

func platformModifierMasks() map[string]uint32 {
	return map[string]uint32{
		"none":    0,
		"ctrl":    ModCtrl,
		"control": ModCtrl,
		"shift":   ModShift,
		"alt":     ModAlt,
		"super":   ModWin,
		"win":     ModWin,
	}
}
