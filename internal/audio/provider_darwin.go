//go:build darwin

package audio

import "errors"

// NewSystemProvider fails on macOS: CoreAudio has no per-process session
// mixer to drive.
func NewSystemProvider() (Provider, error) {
	return nil, errors.New("per-process audio sessions are not supported on macOS")
}
