package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xpanvictor/xarvis-voice/pkg/lipsync"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print how each mouth shape maps onto rigs with 3 to 6 images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeTable(cmd.OutOrStdout(), outputJSON)
	},
}

func writeTable(w io.Writer, asJSON bool) error {
	if asJSON {
		out := map[string]map[lipsync.Shape]int{}
		for n := lipsync.MinShapeCount; n <= lipsync.MaxShapeCount; n++ {
			row := map[lipsync.Shape]int{}
			for _, s := range lipsync.Shapes {
				row[s] = lipsync.ShapeIndex(s, n)
			}
			out[strconv.Itoa(n)] = row
		}
		return json.NewEncoder(w).Encode(out)
	}

	fmt.Fprint(w, "shape")
	for n := lipsync.MinShapeCount; n <= lipsync.MaxShapeCount; n++ {
		fmt.Fprintf(w, "  %d", n)
	}
	fmt.Fprintln(w)
	for _, s := range lipsync.Shapes {
		fmt.Fprintf(w, "%-5s", s)
		for n := lipsync.MinShapeCount; n <= lipsync.MaxShapeCount; n++ {
			fmt.Fprintf(w, "  %d", lipsync.ShapeIndex(s, n))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
