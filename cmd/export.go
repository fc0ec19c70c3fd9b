package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/bgraf/trackheat/config"
	"github.com/bgraf/trackheat/export"
	"github.com/bgraf/trackheat/filesystem"
	"github.com/bgraf/trackheat/geotrack"
	"github.com/bgraf/trackheat/simplify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [FILE-OR-DIRECTORY...]",
	Short: "Export cleaned tracks for a renderer",
	Long: `Export writes the points of all given recordings as [lat, lon] pairs,
rich point records or GeoJSON. Point formats are sampled down to the
configured budget and gaps are filled by interpolation.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "latlon", "Output format: latlon, rich or geojson")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolP("yes", "y", false, "Overwrite the output file without asking")

	exportCmd.Flags().Int("max-points", config.DefaultMaxPoints(), "Global point budget")
	exportCmd.Flags().Float64("interpolate", config.DefaultInterpolateDeg(), "Largest gap between points in degrees, 0 disables")

	for key, flag := range map[string]string{
		config.KeyMaxPoints:      "max-points",
		config.KeyInterpolateDeg: "interpolate",
	} {
		if err := viper.BindPFlag(key, exportCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	interpolateDeg := config.InterpolateDeg()
	if err := simplify.CheckInterpolateDeg(interpolateDeg); err != nil {
		return err
	}

	if output != "" && !yes && filesystem.FileExists(output) {
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Overwrite %s", output),
			Default: false,
		}

		var overwrite bool
		err := survey.AskOne(prompt, &overwrite)
		if err == terminal.InterruptErr {
			os.Exit(1)
		}
		if err != nil {
			return err
		}

		if !overwrite {
			return nil
		}
	}

	result, err := loadTracks(cmd.Context(), args)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return writeExport(w, format, result.Tracks(), config.MaxPoints(), interpolateDeg)
}

func writeExport(w io.Writer, format string, tracks []*geotrack.Track, maxPoints int, interpolateDeg float64) error {
	switch format {
	case "latlon":
		points := simplify.Flatten(simplify.PrepareHeatPoints(tracks, maxPoints, interpolateDeg))
		return export.WriteJSON(w, export.LatLonPairs(points))
	case "rich":
		points := simplify.Flatten(simplify.PrepareHeatPoints(tracks, maxPoints, interpolateDeg))
		return export.WriteJSON(w, export.RichPoints(points))
	case "geojson":
		return export.WriteJSON(w, export.GeoJSON(tracks, nil))
	}

	return fmt.Errorf("unknown format '%s'", format)
}
