package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamlens/streamlens/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export [from] [to (optional)]",
	Short: "Writes every analytics table as CSV, plus a highlights file",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExport(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(args []string) error {
	data, err := buildReportData(args)
	if err != nil {
		return err
	}

	dir := viper.GetString("output-dir")
	written, err := report.WriteCSVs(dir, data)
	if err != nil {
		return err
	}

	insightsPath := filepath.Join(dir, "insights.md")
	if err := os.WriteFile(insightsPath, []byte(report.Insights(data)), 0644); err != nil {
		return fmt.Errorf("writing insights: %w", err)
	}

	log.Info("exported analytics", "csv_files", len(written), "dir", dir)
	return nil
}
