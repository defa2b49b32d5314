//go:build linux

package audio

import (
	"fmt"
	"os/exec"
	"strconv"
)

type commandRunner func(name string, args ...string) ([]byte, error)

func runCommand(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s %v: %w", name, args, err)
	}
	return out, nil
}

type pactlProvider struct {
	run commandRunner
}

// NewSystemProvider returns a PulseAudio/PipeWire provider driven by pactl.
func NewSystemProvider() (Provider, error) {
	if _, err := exec.LookPath("pactl"); err != nil {
		return nil, fmt.Errorf("pactl not found: %w", err)
	}
	return &pactlProvider{run: runCommand}, nil
}

func (p *pactlProvider) Sessions() ([]Session, error) {
	out, err := p.run("pactl", "-f", "json", "list", "sink-inputs")
	if err != nil {
		return nil, err
	}
	inputs, err := parseSinkInputs(out)
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(inputs))
	for _, in := range inputs {
		sessions = append(sessions, &pactlSession{run: p.run, input: in})
	}
	return sessions, nil
}

func (p *pactlProvider) Close() error { return nil }

type pactlSession struct {
	run   commandRunner
	input sinkInput
}

func (s *pactlSession) ProcessName() string { return s.input.processName() }

func (s *pactlSession) Muted() (bool, error) { return s.input.Mute, nil }

func (s *pactlSession) SetMuted(muted bool) error {
	flag := "0"
	if muted {
		flag = "1"
	}
	if _, err := s.run("pactl", "set-sink-input-mute", s.index(), flag); err != nil {
		return err
	}
	s.input.Mute = muted
	return nil
}

func (s *pactlSession) Volume() (float64, error) { return s.input.level(), nil }

func (s *pactlSession) SetVolume(level float64) error {
	_, err := s.run("pactl", "set-sink-input-volume", s.index(), rawVolume(level))
	return err
}

func (s *pactlSession) Release() {}

func (s *pactlSession) index() string {
	return strconv.FormatUint(uint64(s.input.Index), 10)
}
