package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/petems/clutch/internal/app"
	"github.com/petems/clutch/internal/audio"
	"github.com/petems/clutch/internal/cue"
	"github.com/petems/clutch/internal/hotkey"
	"github.com/petems/clutch/internal/notify"
	"github.com/petems/clutch/internal/permissions"
	"github.com/petems/clutch/internal/tray"
)

// checkHotkeyAccess is replaced in tests.
var checkHotkeyAccess = permissions.EnsureHotkeyAccess

func runClutch(cmd *cobra.Command, args []string) error {
	// COM sessions and the hotkey message queue belong to the creating
	// thread; unlock only after every deferred Close has run.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	// Every binding must resolve before anything is registered
	slots, err := app.BuildSlots(cfg.Keybindings, cfg.Source)
	if err != nil {
		return err
	}

	if err := checkHotkeyAccess(); err != nil {
		log.Warn().Err(err).Msg("Hotkeys may not fire until clutch is approved")
	}

	sessions, err := newSessionProvider()
	if err != nil {
		return err
	}
	defer sessions.Close()

	var sinks app.MultiStatus
	whitelist := cfg.Settings.Whitelist

	if cfg.Settings.FeedbackTone {
		player, err := cue.New(log)
		if err != nil {
			log.Warn().Err(err).Msg("Feedback tones disabled")
		} else {
			defer player.Close()
			sinks = append(sinks, player)
			// keep our own cue audible while everything else is muted
			if exe, err := os.Executable(); err == nil {
				whitelist = append(whitelist, filepath.Base(exe))
			}
		}
	}

	controller := audio.NewController(sessions, audio.Config{
		Whitelist:      whitelist,
		MusicApp:       cfg.Settings.MusicApp,
		VolumeIncrease: cfg.Settings.VolumeIncrease,
		VolumeDecrease: cfg.Settings.VolumeDecrease,
	}, log)

	hk, err := hotkey.New()
	if err != nil {
		return err
	}
	defer hk.Close()

	var trayUI *tray.UI
	if cfg.Settings.Tray && tray.Supported() {
		trayUI = tray.New(nil, version, commit, log) // App reference set below
		sinks = append(sinks, trayUI)
	}
	if cfg.Settings.Notifications {
		sinks = append(sinks, notify.New(true, log))
	}

	application := app.New(app.Config{
		Hotkeys:       hk,
		Audio:         controller,
		Slots:         slots,
		UnmuteOnQuit:  cfg.Settings.UnmuteOnQuit,
		Logger:        log,
		StatusUpdater: sinks,
	})

	if trayUI != nil {
		trayUI.SetApp(application)
		trayUI.Start()
		defer trayUI.Stop()
	}

	// Signals take the same path as the quit hotkey
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		if err := application.Post(app.ActionQuit); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
			hk.Quit()
		}
	}()

	log.Info().Str("version", version).Msg("Clutch starting...")
	return application.Run()
}
