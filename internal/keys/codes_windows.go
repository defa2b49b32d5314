//go:build windows

package keys

// Win32 MOD_* flags.
const (
	ModAlt   uint32 = 0x1
	ModCtrl  uint32 = 0x2
	ModShift uint32 = 0x4
	ModWin   uint32 = 0x8
)

func platformKeyCodes() map[string]uint32 {
	codes := map[string]uint32{
		"space":  0x20, // VK_SPACE
		"return": 0x0D,
		"enter":  0x0D,
		"tab":    0x09,
		"escape": 0x1B,
		"esc":    0x1B,
		"delete": 0x2E,
		"left":   0x25,
		"up":     0x26,
		"right":  0x27,
		"down":   0x28,
	}
	addRun(codes, '0', '9', 0x30)
	addRun(codes, 'a', 'z', 0x41) // VK_A..VK_Z are the upper-case ASCII codes
	addFunctionKeys(codes, 0x70)
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
