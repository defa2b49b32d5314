package main

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petems/clutch/internal/audio"
)

// newSessionProvider opens the platform mixer; replaced in tests.
var newSessionProvider = audio.NewSystemProvider

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List live audio sessions with their mute state and volume",
	Long: `List the audio sessions currently open in the system mixer. The
process column is the name to use in settings.whitelist and
settings.music_app.`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	runtime.LockOSThread() // COM apartment
	defer runtime.UnlockOSThread()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	provider, err := newSessionProvider()
	if err != nil {
		return err
	}
	defer provider.Close()

	controller := audio.NewController(provider, audio.Config{
		Whitelist: cfg.Settings.Whitelist,
		MusicApp:  cfg.Settings.MusicApp,
	}, log)

	infos, err := controller.Snapshot()
	if err != nil {
		return err
	}
	return printSessions(cmd, controller, infos)
}

func printSessions(cmd *cobra.Command, c *audio.Controller, infos []audio.SessionInfo) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROCESS\tMUTED\tVOLUME\tWHITELISTED")
	for _, info := range infos {
		name := info.Process
		if name == "" {
			name = "(system)"
		}
		fmt.Fprintf(w, "%s\t%t\t%.0f%%\t%t\n", name, info.Muted, info.Volume*100, c.Whitelisted(info.Process))
	}
	return w.Flush()
}
