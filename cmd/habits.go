package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streamlens/streamlens/internal/analytics"
)

var habitsBucket string

var habitsCmd = &cobra.Command{
	Use:   "habits [from] [to (optional)]",
	Short: "Shows listening time by hour, weekday, or month",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printHabits(habitsBucket, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(habitsCmd)

	habitsCmd.Flags().StringVarP(&habitsBucket, "by", "b", "hour", "bucket: hour, weekday, or month")
}

func printHabits(bucket string, args []string) error {
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
	switch bucket {
	case "hour":
		results, err := a.ByHour(dateRange)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{strconv.Itoa(r.Hour), strconv.FormatFloat(r.Hours, 'f', 2, 64)})
		}
		fmt.Print(renderTable([]string{"Hour", "Hours Listened"}, rows))

	case "weekday":
		results, err := a.ByWeekday(dateRange)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.Weekday, strconv.FormatFloat(r.Hours, 'f', 2, 64)})
		}
		fmt.Print(renderTable([]string{"Weekday", "Hours Listened"}, rows))

	case "month":
		results, err := a.ByMonth(dateRange)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{
				r.Month,
				strconv.FormatFloat(r.Hours, 'f', 2, 64),
				strconv.FormatInt(r.UniqueArtists, 10),
				strconv.FormatInt(r.UniqueTracks, 10),
			})
		}
		fmt.Print(renderTable([]string{"Month", "Hours Listened", "Unique Artists", "Unique Tracks"}, rows))

	default:
		return fmt.Errorf("unknown bucket %q, expected hour, weekday, or month", bucket)
	}
	return nil
}
