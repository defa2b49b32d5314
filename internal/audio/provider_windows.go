//go:build windows

package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
	"golang.org/x/sys/windows"
)

// COM returns S_FALSE when the apartment is already initialised.
const _S_FALSE = 0x1

type wcaProvider struct{}

// NewSystemProvider initialises COM on the calling thread and returns a
// WASAPI session provider. All calls must stay on that thread.
func NewSystemProvider() (Provider, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != _S_FALSE {
			return nil, fmt.Errorf("initialize COM: %w", err)
		}
	}
	return &wcaProvider{}, nil
}

func (p *wcaProvider) Sessions() ([]Session, error) {
	var enumerator *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &enumerator); err != nil {
		return nil, fmt.Errorf("create device enumerator: %w", err)
	}
	defer enumerator.Release()

	var device *wca.IMMDevice
	if err := enumerator.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &device); err != nil {
		return nil, fmt.Errorf("get default render endpoint: %w", err)
	}
	defer device.Release()

	var manager *wca.IAudioSessionManager2
	if err := device.Activate(wca.IID_IAudioSessionManager2, wca.CLSCTX_ALL, nil, &manager); err != nil {
		return nil, fmt.Errorf("activate session manager: %w", err)
	}
	defer manager.Release()

	var sessionEnum *wca.IAudioSessionEnumerator
	if err := manager.GetSessionEnumerator(&sessionEnum); err != nil {
		return nil, fmt.Errorf("get session enumerator: %w", err)
	}
	defer sessionEnum.Release()

	var count int
	if err := sessionEnum.GetCount(&count); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	sessions := make([]Session, 0, count)
	for i := 0; i < count; i++ {
		s, err := openSession(sessionEnum, i)
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (p *wcaProvider) Close() error {
	ole.CoUninitialize()
	return nil
}

func openSession(sessionEnum *wca.IAudioSessionEnumerator, i int) (*wcaSession, error) {
	var control *wca.IAudioSessionControl
	if err := sessionEnum.GetSession(i, &control); err != nil {
		return nil, err
	}
	defer control.Release()

	dispatch, err := control.QueryInterface(wca.IID_IAudioSessionControl2)
	if err != nil {
		return nil, err
	}
	control2 := (*wca.IAudioSessionControl2)(unsafe.Pointer(dispatch))
	defer control2.Release()

	// Multi-process sessions report an error alongside a zero PID.
	var pid uint32
	_ = control2.GetProcessId(&pid)

	dispatch, err = control2.QueryInterface(wca.IID_ISimpleAudioVolume)
	if err != nil {
		return nil, err
	}

	return &wcaSession{
		name:   processName(pid),
		volume: (*wca.ISimpleAudioVolume)(unsafe.Pointer(dispatch)),
	}, nil
}

// processName returns the executable base name of pid, or "" for the
// system sounds session and processes we may not inspect.
func processName(pid uint32) string {
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return filepath.Base(windows.UTF16ToString(buf[:size]))
}

type wcaSession struct {
	name   string
	volume *wca.ISimpleAudioVolume
}

func (s *wcaSession) ProcessName() string { return s.name }

func (s *wcaSession) Muted() (bool, error) {
	var muted bool
	if err := s.volume.GetMute(&muted); err != nil {
		return false, err
	}
	return muted, nil
}

func (s *wcaSession) SetMuted(muted bool) error {
	return s.volume.SetMute(muted, nil)
}

func (s *wcaSession) Volume() (float64, error) {
	var level float32
	if err := s.volume.GetMasterVolume(&level); err != nil {
		return 0, err
	}
	return float64(level), nil
}

func (s *wcaSession) SetVolume(level float64) error {
	return s.volume.SetMasterVolume(float32(clamp(level)), nil)
}

func (s *wcaSession) Release() {
	s.volume.Release()
}
