package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/streamlens/streamlens/internal/analytics"
)

var guiltyNumber int

var guiltyPleasuresCmd = &cobra.Command{
	Use:   "guilty-pleasures [from] [to (optional)]",
	Short: "Shows high-frequency, low-total-time tracks",
	Long:  `Tracks played in at least five sessions but totaling under twelve minutes.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printGuiltyPleasures(guiltyNumber, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(guiltyPleasuresCmd)

	guiltyPleasuresCmd.Flags().IntVarP(&guiltyNumber, "number", "n", 20, "number of results to return")
}

func printGuiltyPleasures(numToReturn int, args []string) error {
	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := analytics.New(db).GuiltyPleasures(dateRange, numToReturn)
	if err != nil {
		return err
	}

	fmt.Print(renderTable([]string{"Track", "Artist", "Sessions", "Minutes"}, replayRows(results)))
	return nil
}
