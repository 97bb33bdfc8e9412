package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSVs writes one CSV per metric into dir, mirroring the report's
// sections. Returns the files written.
func WriteCSVs(dir string, d *Data) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := map[string]func() ([]string, [][]string){
		"top_artists.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.TopArtists {
				rows = append(rows, []string{r.Artist, formatFloat(r.Hours, 2), strconv.FormatInt(r.Plays, 10)})
			}
			return []string{"artistName", "hours_listened", "plays"}, rows
		},
		"top_tracks.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.TopTracks {
				rows = append(rows, []string{r.Track, r.Artist, formatFloat(r.Hours, 2), strconv.FormatInt(r.Plays, 10)})
			}
			return []string{"trackName", "artistName", "hours_listened", "plays"}, rows
		},
		"by_hour.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.ByHour {
				rows = append(rows, []string{strconv.Itoa(r.Hour), formatFloat(r.Hours, 2)})
			}
			return []string{"hour", "hours_listened"}, rows
		},
		"by_weekday.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.ByWeekday {
				rows = append(rows, []string{r.Weekday, formatFloat(r.Hours, 2)})
			}
			return []string{"weekday", "hours_listened"}, rows
		},
		"by_month.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.ByMonth {
				rows = append(rows, []string{r.Month, formatFloat(r.Hours, 2),
					strconv.FormatInt(r.UniqueArtists, 10), strconv.FormatInt(r.UniqueTracks, 10)})
			}
			return []string{"month", "hours_listened", "unique_artists", "unique_tracks"}, rows
		},
		"artist_binges.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.Binges {
				rows = append(rows, []string{r.Month, r.Artist, formatFloat(r.SharePct, 1)})
			}
			return []string{"month", "artistName", "month_share_pct"}, rows
		},
		"skips.csv": func() ([]string, [][]string) {
			rows := [][]string{{
				strconv.FormatInt(d.Skips.TotalPlays, 10),
				strconv.FormatInt(d.Skips.PlaysUnder30s, 10),
				formatFloat(d.Skips.PctUnder30s, 1),
				strconv.FormatInt(d.Skips.PlaysUnder60s, 10),
				formatFloat(d.Skips.PctUnder60s, 1),
			}}
			return []string{"total_plays", "plays_lt_30s", "pct_lt_30s", "plays_lt_60s", "pct_lt_60s"}, rows
		},
		"repeats.csv": func() ([]string, [][]string) {
			rows := [][]string{{
				strconv.FormatInt(d.Repeats.Plays, 10),
				strconv.FormatInt(d.Repeats.UniqueTracks, 10),
				formatFloat(d.Repeats.PlaysPerTrack, 2),
			}}
			return []string{"plays", "unique_tracks", "avg_plays_per_track"}, rows
		},
		"top_replays.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.Replays {
				rows = append(rows, []string{r.Track, r.Artist, strconv.FormatInt(r.Sessions, 10), formatFloat(r.Minutes, 1)})
			}
			return []string{"trackName", "artistName", "play_sessions", "minutes_listened"}, rows
		},
		"discovery.csv": func() ([]string, [][]string) {
			var rows [][]string
			for _, r := range d.Discovery {
				rows = append(rows, []string{r.Date, strconv.FormatInt(r.NewArtists, 10), strconv.FormatInt(r.Cumulative, 10)})
			}
			return []string{"date", "new_artists", "cumulative_artists"}, rows
		},
	}

	var written []string
	for name, build := range files {
		header, rows := build()
		path := filepath.Join(dir, name)
		if err := writeCSV(path, header, rows); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// Insights renders the short highlights file that accompanies the CSVs.
func Insights(d *Data) string {
	lines := []string{"# Listening Insights", "", "## Highlights", ""}

	if len(d.TopArtists) > 0 {
		top := d.TopArtists[0]
		lines = append(lines, fmt.Sprintf("- **Top artist:** %s (%s hours).", top.Artist, formatFloat(top.Hours, 2)))
	}
	if len(d.TopTracks) > 0 {
		top := d.TopTracks[0]
		lines = append(lines, fmt.Sprintf("- **Top track:** %q — %s (%s hours).", top.Track, top.Artist, formatFloat(top.Hours, 2)))
	}
	lines = append(lines,
		fmt.Sprintf("- **Skipping proxy (<30s):** %s%% of plays; <60s: %s%%.",
			formatFloat(d.Skips.PctUnder30s, 1), formatFloat(d.Skips.PctUnder60s, 1)),
		fmt.Sprintf("- **Repeat rate:** %s plays per distinct track.", formatFloat(d.Repeats.PlaysPerTrack, 2)),
		fmt.Sprintf("- **Peak hours:** %s.", d.PeakHours()),
		fmt.Sprintf("- **Top weekdays:** %s.", d.TopWeekdays()),
	)

	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
