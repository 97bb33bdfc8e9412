package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streamlens/streamlens/internal/analytics"
)

var bingesCmd = &cobra.Command{
	Use:   "binges [from] [to (optional)]",
	Short: "Shows monthly artist binges",
	Long:  `Artists capturing at least 30 minutes of a month, with their share of that month's total listening time.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printBinges(args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(bingesCmd)
}

func printBinges(args []string) error {
	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := analytics.New(db).Binges(dateRange)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Month,
			r.Artist,
			strconv.FormatFloat(r.SharePct, 'f', 1, 64),
		})
	}
	fmt.Print(renderTable([]string{"Month", "Artist", "Share %"}, rows))
	return nil
}
