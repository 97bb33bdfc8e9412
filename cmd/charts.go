package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamlens/streamlens/internal/charts"
)

var chartsCmd = &cobra.Command{
	Use:   "charts [from] [to (optional)]",
	Short: "Renders PNG charts into the output directory",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCharts(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering charts: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(args []string) error {
	data, err := buildReportData(args)
	if err != nil {
		return err
	}

	dir := viper.GetString("output-dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	renders := []struct {
		name   string
		render func(path string) error
	}{
		{"chart_top_artists.png", func(p string) error { return charts.TopArtists(data.TopArtists, p) }},
		{"chart_by_hour.png", func(p string) error { return charts.ByHour(data.ByHour, p) }},
		{"chart_weekday.png", func(p string) error { return charts.ByWeekday(data.ByWeekday, p) }},
		{"chart_monthly_trend.png", func(p string) error { return charts.MonthlyTrend(data.ByMonth, p) }},
		{"chart_discovery.png", func(p string) error { return charts.Discovery(data.Discovery, p) }},
	}

	for _, c := range renders {
		if err := c.render(filepath.Join(dir, c.name)); err != nil {
			return err
		}
	}

	log.Info("charts rendered", "count", len(renders), "dir", dir)
	return nil
}
