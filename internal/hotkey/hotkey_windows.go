//go:build windows

package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessage         = user32.NewProc("GetMessageW")
	procPeekMessage        = user32.NewProc("PeekMessageW")
	procTranslateMessage   = user32.NewProc("TranslateMessage")
	procDispatchMessage    = user32.NewProc("DispatchMessageW")
	procPostThreadMessage  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadID = kernel32.NewProc("GetCurrentThreadId")
)

const (
	_WM_QUIT      = 0x0012
	_WM_HOTKEY    = 0x0312
	_WM_USER      = 0x0400
	_WM_APP       = 0x8000
	_MOD_NOREPEAT = 0x4000
	_PM_NOREMOVE  = 0x0000

	// wmPostedAction carries a synthetic activation in wParam.
	wmPostedAction = _WM_APP + 1
)

type _POINT struct {
	X, Y int32
}

type _MSG struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      _POINT
}

type windowsProvider struct {
	threadID uint32

	closeOnce sync.Once
	closed    bool
}

// New creates a Win32 hotkey provider bound to the calling OS thread.
// The caller must have locked the goroutine to its thread.
func New() (Provider, error) {
	tid, _, _ := procGetCurrentThreadID.Call()

	// Force creation of the thread message queue so Post works before
	// the first GetMessage call.
	var msg _MSG
	procPeekMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, _WM_USER, _WM_USER, _PM_NOREMOVE)

	return &windowsProvider{threadID: uint32(tid)}, nil
}

func (p *windowsProvider) Register(id int, mods, key uint32) error {
	ret, _, err := procRegisterHotKey.Call(0, uintptr(id), uintptr(mods|_MOD_NOREPEAT), uintptr(key))
	if ret == 0 {
		if errors.Is(err, windows.ERROR_HOTKEY_ALREADY_REGISTERED) {
			err = ErrComboTaken
		}
		return fmt.Errorf("RegisterHotKey id=%d: %w", id, err)
	}
	return nil
}

func (p *windowsProvider) Unregister(id int) error {
	ret, _, err := procUnregisterHotKey.Call(0, uintptr(id))
	if ret == 0 {
		return fmt.Errorf("UnregisterHotKey id=%d: %w", id, err)
	}
	return nil
}

func (p *windowsProvider) Next() (Event, error) {
	if p.closed {
		return Event{}, ErrClosed
	}

	msg := new(_MSG)
	ret, _, err := procGetMessage.Call(uintptr(unsafe.Pointer(msg)), 0, 0, 0)
	switch int32(ret) {
	case 0: // WM_QUIT
		p.closed = true
		return Event{}, ErrClosed
	case -1:
		return Event{}, fmt.Errorf("GetMessageW: %w", err)
	}

	switch msg.Message {
	case _WM_HOTKEY, wmPostedAction:
		return Event{Kind: KindActivation, ID: int(msg.WParam), native: msg}, nil
	}
	return Event{Kind: KindOther, native: msg}, nil
}

func (p *windowsProvider) Passthrough(ev Event) {
	msg, ok := ev.native.(*_MSG)
	if !ok {
		return
	}
	procTranslateMessage.Call(uintptr(unsafe.Pointer(msg)))
	procDispatchMessage.Call(uintptr(unsafe.Pointer(msg)))
}

func (p *windowsProvider) Post(id int) error {
	ret, _, err := procPostThreadMessage.Call(uintptr(p.threadID), wmPostedAction, uintptr(id), 0)
	if ret == 0 {
		return fmt.Errorf("PostThreadMessageW: %w", err)
	}
	return nil
}

func (p *windowsProvider) Quit() {
	procPostThreadMessage.Call(uintptr(p.threadID), _WM_QUIT, 0, 0)
}

func (p *windowsProvider) Close() error {
	p.closeOnce.Do(p.Quit)
	return nil
}
