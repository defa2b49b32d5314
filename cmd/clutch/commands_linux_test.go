//go:build linux

package main

import (
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/petems/clutch/internal/audio"
)

// threadProvider records the OS thread of every call, like a COM
// apartment would care about.
type threadProvider struct {
	opened int
	calls  []int
}

func (p *threadProvider) Sessions() ([]audio.Session, error) {
	// give the scheduler every chance to move the goroutine
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() { defer wg.Done(); runtime.Gosched() }()
	}
	wg.Wait()
	runtime.GC()

	p.calls = append(p.calls, unix.Gettid())
	return nil, nil
}

func (p *threadProvider) Close() error {
	p.calls = append(p.calls, unix.Gettid())
	return nil
}

func TestSessionsStaysOnProviderThread(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	globalOpts.configPath = filepath.Join(t.TempDir(), "missing.toml")
	t.Cleanup(func() { globalOpts.configPath = "" })

	p := &threadProvider{}
	prev := newSessionProvider
	newSessionProvider = func() (audio.Provider, error) {
		p.opened = unix.Gettid()
		return p, nil
	}
	t.Cleanup(func() { newSessionProvider = prev })

	outputOf(sessionsCmd)
	require.NoError(t, runSessions(sessionsCmd, nil))

	require.Len(t, p.calls, 2)
	for _, tid := range p.calls {
		assert.Equal(t, p.opened, tid)
	}
}
