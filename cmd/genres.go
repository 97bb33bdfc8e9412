package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamlens/streamlens/internal/analytics"
	"github.com/streamlens/streamlens/internal/genres"
)

var genresNumber int

var genresCmd = &cobra.Command{
	Use:   "genres [from] [to (optional)]",
	Short: "Rolls listening hours up into genres",
	Long: `Requires an artist-to-genres CSV (--genres). Each artist's hours are split
equally across its listed genres; unmapped artists count as Unknown.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := printGenres(genresNumber, args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)

	genresCmd.Flags().IntVarP(&genresNumber, "number", "n", 15, "number of results to return")
}

func printGenres(numToReturn int, args []string) error {
	table, err := genres.Load(viper.GetString("genres"))
	if err != nil {
		return err
	}
	if table == nil {
		return fmt.Errorf("no genre table configured; pass --genres with an artistName,genres CSV")
	}

	dateRange, err := parseRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := analytics.New(db).TopGenres(dateRange, table, numToReturn)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Genre, strconv.FormatFloat(r.Hours, 'f', 2, 64)})
	}
	fmt.Print(renderTable([]string{"Genre", "Hours"}, rows))
	return nil
}
