//go:build !darwin

// Package permissions checks the OS approvals clutch needs before it can
// install global hotkeys.
package permissions

// EnsureHotkeyAccess is a no-op: Windows and X11 need no approval.
func EnsureHotkeyAccess() error {
	return nil
}
