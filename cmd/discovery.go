package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streamlens/streamlens/internal/analytics"
)

var discoveryCmd = &cobra.Command{
	Use:   "discovery [from] [to (optional)]",
	Short: "Shows new artists discovered over time",
	Long:  `For each listening date, the number of artists first heard that day and the running cumulative count.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printDiscovery(args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(discoveryCmd)
}

func printDiscovery(args []string) error {
	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := analytics.New(db).Discovery(dateRange)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Date,
			strconv.FormatInt(r.NewArtists, 10),
			strconv.FormatInt(r.Cumulative, 10),
		})
	}
	fmt.Print(renderTable([]string{"Date", "New Artists", "Cumulative"}, rows))
	return nil
}
