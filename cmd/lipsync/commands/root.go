package commands

import (
	"github.com/spf13/cobra"
)

var outputJSON bool

var rootCmd = &cobra.Command{
	Use:   "lipsync",
	Short: "Compute mouth cues for recorded speech",
	Long: `lipsync runs the same cue estimation the voice server uses on a local
audio file, and prints the mouth shape remapping for rigs with 3 to 6 images.

Examples:
  lipsync cues hello.wav --shapes 4
  lipsync cues reply.mp3 --text "Hi there!" --json
  lipsync table`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns the root cobra command.
func Command() *cobra.Command {
	return rootCmd
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(cuesCmd)
	rootCmd.AddCommand(tableCmd)
}
