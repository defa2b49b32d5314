// Package main provides the CLI entrypoint for clutch.
package main

import (
	"os"

	"golang.design/x/hotkey/mainthread"
)

func main() {
	// hotkeys on macOS must be driven from the main thread
	code := 0
	mainthread.Init(func() {
		code = Execute()
	})
	os.Exit(code)
}
