package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamlens/streamlens/internal/analytics"
	"github.com/streamlens/streamlens/internal/genres"
	"github.com/streamlens/streamlens/internal/report"
)

const reportFileName = "Listening_Report.md"

var reportCmd = &cobra.Command{
	Use:   "report [from] [to (optional)]",
	Short: "Generates the full markdown listening report",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReport(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(args []string) error {
	path, err := writeReport(args)
	if err != nil {
		return err
	}
	log.Info("report written", "path", path)
	return nil
}

// writeReport builds the full report and writes it into the output directory,
// returning the file path.
func writeReport(args []string) (string, error) {
	data, err := buildReportData(args)
	if err != nil {
		return "", err
	}

	md, err := report.Markdown(data)
	if err != nil {
		return "", err
	}

	dir := viper.GetString("output-dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, reportFileName)
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// buildReportData runs the whole analytics catalogue for the given date args.
func buildReportData(args []string) (*report.Data, error) {
	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return nil, err
	}

	genreTable, err := genres.Load(viper.GetString("genres"))
	if err != nil {
		return nil, err
	}

	db, err := openStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return report.Build(analytics.New(db), genreTable, dateRange)
}
