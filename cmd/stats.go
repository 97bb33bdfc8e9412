package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/streamlens/streamlens/internal/analytics"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats [from] [to (optional)]",
	Short: "Prints overall listening statistics",
	Long: `Totals, unique counts, the loyalty concentration index, the skip proxy,
and the repeat rate, optionally filtered by a date or date range.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printStats(statsFormat, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "output format: text or yaml")
}

// statsSummary is the machine-readable stats document.
type statsSummary struct {
	Totals        analytics.Totals        `yaml:"totals"`
	Concentration analytics.Concentration `yaml:"concentration"`
	Skips         analytics.SkipStats     `yaml:"skip_proxy"`
	Repeats       analytics.RepeatStats   `yaml:"repeat_rate"`
}

func printStats(format string, args []string) error {
	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	a := analytics.New(db)
	var summary statsSummary
	if summary.Totals, err = a.Totals(dateRange); err != nil {
		return err
	}
	if summary.Concentration, err = a.Concentration(dateRange); err != nil {
		return err
	}
	if summary.Skips, err = a.SkipStats(dateRange); err != nil {
		return err
	}
	if summary.Repeats, err = a.RepeatRate(dateRange); err != nil {
		return err
	}

	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(summary); err != nil {
			return fmt.Errorf("encoding stats: %w", err)
		}
		return nil

	case "text":
		fmt.Printf("Period:         %s to %s\n", orNA(summary.Totals.FirstDate), orNA(summary.Totals.LastDate))
		fmt.Printf("Plays:          %d (%.1f hours)\n", summary.Totals.Plays, summary.Totals.Hours)
		fmt.Printf("Unique artists: %d\n", summary.Totals.UniqueArtists)
		fmt.Printf("Unique tracks:  %d\n", summary.Totals.UniqueTracks)
		fmt.Printf("Loyalty:        HHI %.4f (%s)\n", summary.Concentration.HHI, summary.Concentration.Label)
		fmt.Printf("Skip proxy:     %.1f%% under 30s, %.1f%% under 60s\n",
			summary.Skips.PctUnder30s, summary.Skips.PctUnder60s)
		fmt.Printf("Repeat rate:    %.2f plays per distinct track\n", summary.Repeats.PlaysPerTrack)
		return nil

	default:
		return fmt.Errorf("unknown format %q, expected text or yaml", format)
	}
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
