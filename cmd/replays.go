package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streamlens/streamlens/internal/analytics"
)

var replaysMinSessions int
var replaysNumber int

var replaysCmd = &cobra.Command{
	Use:   "replays [from] [to (optional)]",
	Short: "Shows the most replayed tracks",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printReplays(replaysMinSessions, replaysNumber, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replaysCmd)

	replaysCmd.Flags().IntVar(&replaysMinSessions, "min-sessions", 3, "only show tracks with at least this many play sessions")
	replaysCmd.Flags().IntVarP(&replaysNumber, "number", "n", 20, "number of results to return")
}

func printReplays(minSessions, numToReturn int, args []string) error {
	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := analytics.New(db).Replays(dateRange, minSessions, numToReturn)
	if err != nil {
		return err
	}

	fmt.Print(renderTable([]string{"Track", "Artist", "Sessions", "Minutes"}, replayRows(results)))
	return nil
}

func replayRows(results []analytics.Replay) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Track,
			r.Artist,
			strconv.FormatInt(r.Sessions, 10),
			strconv.FormatFloat(r.Minutes, 'f', 1, 64),
		})
	}
	return rows
}
