//go:build darwin

package permissions

/*
#cgo LDFLAGS: -framework ApplicationServices -framework Cocoa
#import <ApplicationServices/ApplicationServices.h>
#import <Cocoa/Cocoa.h>

int checkAccessibilityPermission(int prompt) {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

import "errors"

// CheckAccessibility reports whether clutch may install global hotkeys.
// With prompt set, macOS shows its approval dialog when access is missing.
func CheckAccessibility(prompt bool) bool {
	p := C.int(0)
	if prompt {
		p = 1
	}
	return C.checkAccessibilityPermission(p) == 1
}

// EnsureHotkeyAccess reports a missing Accessibility approval. Carbon
// hotkeys register without it, but some setups filter their events until
// the app is approved.
func EnsureHotkeyAccess() error {
	if !CheckAccessibility(true) {
		return errors.New("accessibility permission not granted; allow clutch in System Settings → Privacy & Security → Accessibility")
	}
	return nil
}
