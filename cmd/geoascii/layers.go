package geoascii

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/source"
	"github.com/arthur-debert/geoascii/pkg/table"
	"github.com/spf13/cobra"
)

func newLayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "layers INFILE...",
		Short:   MsgLayersShort,
		Long:    MsgLayersLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := readLayers(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(layers) == 0 {
				_, err := fmt.Fprintln(out, MsgNoLayers)
				return err
			}
			for _, l := range layers {
				if _, err := fmt.Fprintln(out, describeLayer(l)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// describeLayer renders the summary table for one layer
func describeLayer(l *source.Layer) string {
	bounds := "empty"
	if l.HasExtent() {
		bounds = l.Bounds().String()
	}
	schema := strings.Join(l.Schema(), ", ")
	if schema == "" {
		schema = "-"
	}
	return table.Render([][]string{
		{"layer", l.Name},
		{"crs", l.CRS},
		{"features", strconv.Itoa(l.Len())},
		{"bounds", bounds},
		{"properties", schema},
	})
}
