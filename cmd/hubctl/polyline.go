package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/truckershub-backend/internal/pkg/polyline"
)

var decodePolylineCmd = &cobra.Command{
	Use:   "decode-polyline <encoded>",
	Short: "Print the coordinates of an encoded polyline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decodePolyline(cmd.OutOrStdout(), args[0])
	},
}

func decodePolyline(w io.Writer, encoded string) error {
	points, err := polyline.Decode(encoded)
	if err != nil {
		return err
	}
	for _, p := range points {
		fmt.Fprintf(w, "%.5f,%.5f\n", p.Lat, p.Lon)
	}
	return nil
}

func init() { rootCmd.AddCommand(decodePolylineCmd) }
