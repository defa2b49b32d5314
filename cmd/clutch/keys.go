package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petems/clutch/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the key and modifier names usable in keybindings",
	Long: `List every key and modifier name accepted in the [keybindings] section
of the config file. Names are case-insensitive and modifiers can be
combined with "+", for example "ctrl+shift".`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Keys:\n  %s\n\n", strings.Join(keys.KeyNames(), " "))
	fmt.Fprintf(out, "Modifiers:\n  %s\n", strings.Join(keys.ModifierNames(), " "))
	return nil
}
