// Package cue plays short audible blips when the mute or suspend state
// changes.
package cue

import (
	"fmt"
	"math"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"
)

const (
	sampleRate      = 44100
	framesPerBuffer = 512
	volume          = 0.3

	// Envelope attack/release in samples, avoids clicks.
	rampSamples = 220
)

// Tone is one blip.
type Tone struct {
	Freq       float64
	DurationMS int
}

var (
	MuteTone    = Tone{Freq: 440, DurationMS: 90}
	UnmuteTone  = Tone{Freq: 880, DurationMS: 90}
	SuspendTone = Tone{Freq: 330, DurationMS: 140}
	ResumeTone  = Tone{Freq: 660, DurationMS: 140}
)

// Synthesize renders tone as mono float32 samples at rate with a linear
// attack and release.
func Synthesize(tone Tone, rate int) []float32 {
	n := rate * tone.DurationMS / 1000
	samples := make([]float32, n)
	ramp := rampSamples
	if ramp > n/2 {
		ramp = n / 2
	}
	for i := range samples {
		gain := 1.0
		switch {
		case i < ramp:
			gain = float64(i) / float64(ramp)
		case i >= n-ramp:
			gain = float64(n-1-i) / float64(ramp)
		}
		samples[i] = float32(volume * gain * math.Sin(2*math.Pi*tone.Freq*float64(i)/float64(rate)))
	}
	return samples
}

// Player writes tones to the default output device. Play blocks until the
// tone has been written. Only state changes are played.
type Player struct {
	log zerolog.Logger

	muted     bool
	suspended bool
}

// New initialises PortAudio. Call Close when done.
func New(log zerolog.Logger) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &Player{log: log}, nil
}

func (p *Player) Play(tone Tone) error {
	buffer := make([]float32, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, len(buffer), buffer)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	samples := Synthesize(tone, sampleRate)
	for off := 0; off < len(samples); off += len(buffer) {
		n := copy(buffer, samples[off:])
		clear(buffer[n:])
		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write tone: %w", err)
		}
	}
	return nil
}

func (p *Player) SetMuted(muted bool) {
	if muted == p.muted {
		return
	}
	p.muted = muted
	if muted {
		p.play(MuteTone)
	} else {
		p.play(UnmuteTone)
	}
}

func (p *Player) SetSuspended(suspended bool) {
	if suspended == p.suspended {
		return
	}
	p.suspended = suspended
	if suspended {
		p.play(SuspendTone)
	} else {
		p.play(ResumeTone)
	}
}

func (p *Player) play(tone Tone) {
	if err := p.Play(tone); err != nil {
		p.log.Debug().Err(err).Msg("Feedback tone failed")
	}
}

func (p *Player) Close() error {
	return portaudio.Terminate()
}
