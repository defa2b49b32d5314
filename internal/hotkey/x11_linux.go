//go:build linux

package hotkey

/*
#cgo pkg-config: x11
#include <X11/Xlib.h>
#include <X11/XKBlib.h>

static int lastError = 0;

static int recordError(Display *d, XErrorEvent *e) {
    lastError = e->error_code;
    return 0;
}

static Display *openDisplay(void) {
    Display *d = XOpenDisplay(NULL);
    if (d != NULL) {
        Bool supported;
        // key repeat sends presses only, no synthetic releases
        XkbSetDetectableAutoRepeat(d, True, &supported);
    }
    return d;
}

static int grabKey(Display *d, unsigned int keycode, unsigned int mods) {
    int (*previous)(Display *, XErrorEvent *) = XSetErrorHandler(recordError);
    lastError = 0;
    XGrabKey(d, keycode, mods, DefaultRootWindow(d), False, GrabModeAsync, GrabModeAsync);
    XSync(d, False);
    XSetErrorHandler(previous);
    return lastError;
}

static void ungrabKey(Display *d, unsigned int keycode, unsigned int mods) {
    XUngrabKey(d, keycode, mods, DefaultRootWindow(d));
    XSync(d, False);
}

static int nextKey(Display *d, unsigned int *keycode, unsigned int *state, int *pressed) {
    XEvent ev;
    while (XPending(d) > 0) {
        XNextEvent(d, &ev);
        if (ev.type == KeyPress || ev.type == KeyRelease) {
            *keycode = ev.xkey.keycode;
            *state = ev.xkey.state;
            *pressed = ev.type == KeyPress;
            return 1;
        }
    }
    return 0;
}
*/
import "C"

import (
	"errors"
	"fmt"
)

type xDisplay struct {
	d *C.Display
}

func openDisplay() (*xDisplay, error) {
	d := C.openDisplay()
	if d == nil {
		return nil, errors.New("cannot open X display (is DISPLAY set?)")
	}
	return &xDisplay{d: d}, nil
}

func (x *xDisplay) Keycode(keysym uint32) uint32 {
	return uint32(C.XKeysymToKeycode(x.d, C.KeySym(keysym)))
}

func (x *xDisplay) Grab(keycode, mods uint32) error {
	switch code := C.grabKey(x.d, C.uint(keycode), C.uint(mods)); code {
	case 0:
		return nil
	case C.BadAccess:
		return ErrComboTaken
	default:
		return fmt.Errorf("XGrabKey: X error %d", int(code))
	}
}

func (x *xDisplay) Ungrab(keycode, mods uint32) {
	C.ungrabKey(x.d, C.uint(keycode), C.uint(mods))
}

func (x *xDisplay) NextKey() (keyEvent, bool) {
	var keycode, state C.uint
	var pressed C.int
	if C.nextKey(x.d, &keycode, &state, &pressed) == 0 {
		return keyEvent{}, false
	}
	return keyEvent{Keycode: uint32(keycode), State: uint32(state), Pressed: pressed != 0}, true
}

func (x *xDisplay) Close() {
	C.XCloseDisplay(x.d)
}
