package cmd

import (
	"fmt"
	"os"

	"github.com/bgraf/trackheat/config"
	"github.com/bgraf/trackheat/export"
	"github.com/bgraf/trackheat/geotrack"
	"github.com/spf13/cobra"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [FILE-OR-DIRECTORY...]",
	Short: "Parse recordings and print a summary per track",
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	parseCmd.Flags().StringP("locale", "l", "", "Locale for dates, e.g. de_DE")
}

// fileReport is the printed outcome for one recording.
type fileReport struct {
	export.Summary `yaml:",inline"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	localeName, err := cmd.Flags().GetString("locale")
	if err != nil {
		return err
	}
	if localeName == "" {
		localeName = config.Locale()
	}

	locale, err := export.ParseLocale(localeName)
	if err != nil {
		return err
	}

	result, err := loadTracks(cmd.Context(), args)
	if err != nil {
		return err
	}

	reports := make([]fileReport, 0, len(result.Results))
	for _, res := range result.Results {
		var report fileReport
		if res.OK() {
			report.Summary = export.Summaries([]*geotrack.Track{res.Track}, locale)[0]
		} else {
			report.Filename = res.Filename
			report.Error = res.Err.Error()
		}
		reports = append(reports, report)
	}

	switch format {
	case "yaml":
		return export.WriteYAML(os.Stdout, reports)
	case "json":
		return export.WriteJSON(os.Stdout, reports)
	}

	return fmt.Errorf("unknown format '%s'", format)
}
