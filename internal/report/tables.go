package report

import (
	"strconv"

	"github.com/streamlens/streamlens/internal/analytics"
)

func artistTable(rows []analytics.ArtistHours) string {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Artist,
			formatFloat(r.Hours, 2),
			strconv.FormatInt(r.Plays, 10),
		})
	}
	return mdTable([]string{"Artist", "Hours", "Plays"}, table)
}

func trackTable(rows []analytics.TrackHours) string {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Track,
			r.Artist,
			formatFloat(r.Hours, 2),
			strconv.FormatInt(r.Plays, 10),
		})
	}
	return mdTable([]string{"Track", "Artist", "Hours", "Plays"}, table)
}

func replayTable(rows []analytics.Replay) string {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Track,
			r.Artist,
			strconv.FormatInt(r.Sessions, 10),
			formatFloat(r.Minutes, 1),
		})
	}
	return mdTable([]string{"Track", "Artist", "Sessions", "Minutes"}, table)
}

func bingeTable(rows []analytics.Binge) string {
	table := make([][]string, 0, len(rows))
	for i, r := range rows {
		if i == 20 {
			break
		}
		table = append(table, []string{
			r.Month,
			r.Artist,
			formatFloat(r.SharePct, 1),
		})
	}
	return mdTable([]string{"Month", "Artist", "Share %"}, table)
}

func genresTable(rows []analytics.GenreHours) string {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Genre,
			formatFloat(r.Hours, 2),
		})
	}
	return mdTable([]string{"Genre", "Hours"}, table)
}
