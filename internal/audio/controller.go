package audio

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Config holds the controller settings taken from the configuration file.
type Config struct {
	Whitelist      []string
	MusicApp       string
	VolumeIncrease float64
	VolumeDecrease float64
}

// Controller owns the mute flag and the tracked music volume. It is not
// safe for concurrent use; the event pump is its only caller.
type Controller struct {
	sessions  Provider
	whitelist map[string]struct{}
	musicApp  string
	stepUp    float64
	stepDown  float64
	log       zerolog.Logger

	muted  bool
	volume float64
}

func NewController(p Provider, cfg Config, log zerolog.Logger) *Controller {
	wl := make(map[string]struct{}, len(cfg.Whitelist))
	for _, name := range cfg.Whitelist {
		wl[name] = struct{}{}
	}
	return &Controller{
		sessions:  p,
		whitelist: wl,
		musicApp:  cfg.MusicApp,
		stepUp:    cfg.VolumeIncrease,
		stepDown:  cfg.VolumeDecrease,
		log:       log,
		volume:    1,
	}
}

func (c *Controller) Muted() bool { return c.muted }

// Volume returns the last volume applied to or read from the music app.
func (c *Controller) Volume() float64 { return c.volume }

// Whitelisted reports whether process is exempt from mute and unmute.
func (c *Controller) Whitelisted(process string) bool {
	_, ok := c.whitelist[process]
	return ok
}

// Mute mutes every session outside the whitelist.
func (c *Controller) Mute() error {
	if err := c.setMuteAll(true); err != nil {
		return err
	}
	c.muted = true
	return nil
}

// Unmute unmutes every session outside the whitelist.
func (c *Controller) Unmute() error {
	if err := c.setMuteAll(false); err != nil {
		return err
	}
	c.muted = false
	return nil
}

func (c *Controller) Toggle() error {
	if c.muted {
		return c.Unmute()
	}
	return c.Mute()
}

func (c *Controller) setMuteAll(muted bool) error {
	sessions, err := c.sessions.Sessions()
	if err != nil {
		return fmt.Errorf("list audio sessions: %w", err)
	}
	defer releaseAll(sessions)

	verb := "unmuted"
	if muted {
		verb = "muted"
	}

	for _, s := range sessions {
		name := s.ProcessName()
		if name == "" || c.Whitelisted(name) {
			continue
		}
		if err := s.SetMuted(muted); err != nil {
			c.log.Warn().Err(err).Str("process", name).Msgf("Failed to set %s", verb)
			continue
		}
		c.log.Info().Str("process", name).Msgf("%s has been %s.", name, verb)
	}
	return nil
}

// ReadVolume returns the volume of the first session owned by process.
func (c *Controller) ReadVolume(process string) (float64, error) {
	sessions, err := c.sessions.Sessions()
	if err != nil {
		return 0, fmt.Errorf("list audio sessions: %w", err)
	}
	defer releaseAll(sessions)

	for _, s := range sessions {
		if s.ProcessName() != process {
			continue
		}
		v, err := s.Volume()
		if err != nil {
			return 0, fmt.Errorf("read volume of %s: %w", process, err)
		}
		return v, nil
	}
	return 0, fmt.Errorf("%s: %w", process, ErrNoMatchingSession)
}

// SetVolume clamps level to [0, 1], applies it to the music app and
// records it as the tracked volume. A music app that is not running is
// not an error.
func (c *Controller) SetVolume(level float64) error {
	level = clamp(level)
	c.volume = level

	sessions, err := c.sessions.Sessions()
	if err != nil {
		return fmt.Errorf("list audio sessions: %w", err)
	}
	defer releaseAll(sessions)

	applied := false
	for _, s := range sessions {
		if s.ProcessName() != c.musicApp {
			continue
		}
		if err := s.SetVolume(level); err != nil {
			c.log.Warn().Err(err).Str("process", c.musicApp).Msg("Failed to set volume")
			continue
		}
		applied = true
	}
	if applied {
		c.log.Info().Str("process", c.musicApp).Float64("volume", level).Msgf("%s volume set to %.0f%%.", c.musicApp, level*100)
	}
	return nil
}

func (c *Controller) IncreaseVolume() error {
	return c.stepVolume(c.stepUp)
}

func (c *Controller) DecreaseVolume() error {
	return c.stepVolume(-c.stepDown)
}

func (c *Controller) stepVolume(delta float64) error {
	if c.musicApp == "" {
		c.log.Info().Msg("No music app configured.")
		return nil
	}

	current, err := c.ReadVolume(c.musicApp)
	if errors.Is(err, ErrNoMatchingSession) {
		c.log.Info().Str("process", c.musicApp).Msgf("%s is not running.", c.musicApp)
		return nil
	}
	if err != nil {
		return err
	}
	return c.SetVolume(current + delta)
}

// Snapshot lists every live session.
func (c *Controller) Snapshot() ([]SessionInfo, error) {
	sessions, err := c.sessions.Sessions()
	if err != nil {
		return nil, fmt.Errorf("list audio sessions: %w", err)
	}
	defer releaseAll(sessions)

	infos := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		info := SessionInfo{Process: s.ProcessName()}
		if m, err := s.Muted(); err == nil {
			info.Muted = m
		}
		if v, err := s.Volume(); err == nil {
			info.Volume = v
		}
		infos = append(infos, info)
	}
	return infos, nil
}
