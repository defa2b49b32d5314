//go:build darwin

package keys

// Carbon modifier flags.
const (
	ModCmd   uint32 = 1 << 8
	ModShift uint32 = 1 << 9
	ModAlt   uint32 = 1 << 11 // option
	ModCtrl  uint32 = 1 << 12
)

// platformKeyCodes returns Carbon virtual key codes (kVK_*), which follow
// the physical ANSI layout rather than the alphabet.
func platformKeyCodes() map[string]uint32 {
	return map[string]uint32{
		"space":  0x31,
		"return": 0x24,
		"enter":  0x24,
		"tab":    0x30,
		"escape": 0x35,
		"esc":    0x35,
		"delete": 0x33,
		"left":   0x7B,
		"right":  0x7C,
		"down":   0x7D,
		"up":     0x7E,

		"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
		"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,

		"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E,
		"f": 0x03, "g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26,
		"k": 0x28, "l": 0x25, "m": 0x2E, "n": 0x2D, "o": 0x1F,
		"p": 0x23, "q": 0x0C, "r": 0x0F, "s": 0x01, "t": 0x11,
		"u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07, "y": 0x10,
		"z": 0x06,

		"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76,
		"f5": 0x60, "f6": 0x61, "f7": 0x62, "f8": 0x64,
		"f9": 0x65, "f10": 0x6D, "f11": 0x67, "f12": 0x6F,
	}
}

func platformModifierMasks() map[string]uint32 {
	return map[string]uint32{
		"none":    0,
		"ctrl":    ModCtrl,
		"control": ModCtrl,
		"shift":   ModShift,
		"alt":     ModAlt,
		"super":   ModCmd,
		"win":     ModCmd,
		"cmd":     ModCmd,
	}
}
