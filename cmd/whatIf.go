package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streamlens/streamlens/internal/analytics"
)

var whatIfNumber int

var whatIfCmd = &cobra.Command{
	Use:   "what-if [from] [to (optional)]",
	Short: "Recomputes the artist ranking without your top artist",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printWhatIf(whatIfNumber, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(whatIfCmd)

	whatIfCmd.Flags().IntVarP(&whatIfNumber, "number", "n", 10, "number of results to return")
}

func printWhatIf(numToReturn int, args []string) error {
	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := analytics.New(db).WhatIfDropTop(dateRange, numToReturn)
	if err != nil {
		return err
	}
	if result.Dropped.Artist == "" {
		fmt.Println("(no data)")
		return nil
	}

	fmt.Printf("Dropping %s (%.2f hours):\n", result.Dropped.Artist, result.Dropped.Hours)
	rows := make([][]string, 0, len(result.Ranking))
	for _, r := range result.Ranking {
		rows = append(rows, []string{
			r.Artist,
			strconv.FormatFloat(r.Hours, 'f', 2, 64),
			strconv.FormatInt(r.Plays, 10),
		})
	}
	fmt.Print(renderTable([]string{"Artist", "Hours", "Plays"}, rows))
	return nil
}
