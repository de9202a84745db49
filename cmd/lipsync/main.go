// Package main provides an offline lip-sync tool.
//
// Usage:
//
//	lipsync cues <audio-file> [--text "..."] [--shapes 4] [--json]
//	lipsync table
package main

import (
	"fmt"
	"os"

	"github.com/xpanvictor/xarvis-voice/cmd/lipsync/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
