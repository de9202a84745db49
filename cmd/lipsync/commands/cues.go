package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xpanvictor/xarvis-voice/pkg/lipsync"
)

var (
	cuesText   string
	cuesShapes int
)

var cuesCmd = &cobra.Command{
	Use:   "cues <audio-file>",
	Short: "Estimate mouth cues for a WAV or MP3 file",
	Long: `Estimate mouth cues from the waveform of a 16-bit WAV or an MP3 file.
When the audio cannot be decoded, --text is used to guess a duration instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audio, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read audio: %w", err)
		}
		if _, err := lipsync.DecodeAudio(audio); err != nil && cuesText == "" {
			return fmt.Errorf("%s: %w (pass --text to estimate from the transcript)", args[0], err)
		}
		cues := lipsync.RemapShapes(lipsync.EstimateCues(audio, cuesText), lipsync.NormalizeShapeCount(cuesShapes))
		return writeCues(cmd.OutOrStdout(), cues, outputJSON)
	},
}

func init() {
	cuesCmd.Flags().StringVarP(&cuesText, "text", "t", "", "spoken text, used when audio cannot be decoded")
	cuesCmd.Flags().IntVarP(&cuesShapes, "shapes", "s", lipsync.DefaultShapeCount, "number of mouth images on the rig (3-6)")
}

func writeCues(w io.Writer, cues []lipsync.RemappedCue, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cues)
	}
	for _, c := range cues {
		if _, err := fmt.Fprintf(w, "%7.3f %7.3f  %s  %d\n", c.Start, c.End, c.Shape, c.ShapeIndex); err != nil {
			return err
		}
	}
	return nil
}
