package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed report.md.tmpl
var reportTemplate string

// view is the flattened template input: tables are prerendered markdown.
type view struct {
	DateRange      string
	TotalHours     string
	TotalPlays     int64
	UniqueArtists  int64
	UniqueTracks   int64
	HHI            string
	LoyaltyLabel   string
	PeakHours      string
	TopWeekdays    string
	PctUnder30s    string
	PctUnder60s    string
	PlaysPerTrack  string
	TopArtists     string
	TopTracks      string
	Replays        string
	GuiltyTable    string
	BingesTable    string
	TopArtistName  string
	NewTopArtist   string
	GenreAvailable bool
	TopGenresTable string
}

// Markdown renders the full report.
func Markdown(d *Data) (string, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}

	v := view{
		DateRange:      dateRange(d),
		TotalHours:     formatFloat(d.Totals.Hours, 1),
		TotalPlays:     d.Totals.Plays,
		UniqueArtists:  d.Totals.UniqueArtists,
		UniqueTracks:   d.Totals.UniqueTracks,
		HHI:            formatFloat(d.Concentration.HHI, 4),
		LoyaltyLabel:   d.Concentration.Label,
		PeakHours:      d.PeakHours(),
		TopWeekdays:    d.TopWeekdays(),
		PctUnder30s:    formatFloat(d.Skips.PctUnder30s, 1),
		PctUnder60s:    formatFloat(d.Skips.PctUnder60s, 1),
		PlaysPerTrack:  formatFloat(d.Repeats.PlaysPerTrack, 2),
		TopArtists:     artistTable(d.TopArtists),
		TopTracks:      trackTable(d.TopTracks),
		Replays:        replayTable(d.Replays),
		GuiltyTable:    replayTable(d.GuiltyPleasures),
		BingesTable:    bingeTable(d.Binges),
		TopArtistName:  orNA(d.WhatIf.Dropped.Artist),
		NewTopArtist:   newTopArtist(d),
		GenreAvailable: d.GenresAvailable,
		TopGenresTable: genresTable(d.Genres),
	}

	out := new(bytes.Buffer)
	if err := tmpl.Execute(out, v); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out.String(), nil
}

func dateRange(d *Data) string {
	if d.Totals.FirstDate == "" {
		return "n/a"
	}
	return fmt.Sprintf("%s to %s", d.Totals.FirstDate, d.Totals.LastDate)
}

func newTopArtist(d *Data) string {
	if len(d.WhatIf.Ranking) == 0 {
		return "n/a"
	}
	return d.WhatIf.Ranking[0].Artist
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// mdTable renders a markdown pipe table, or a placeholder for no rows.
func mdTable(header []string, rows [][]string) string {
	if len(rows) == 0 {
		return "_(no data)_"
	}

	out := new(strings.Builder)
	out.WriteString("| " + strings.Join(header, " | ") + " |\n")
	out.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")
	for _, row := range rows {
		out.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return strings.TrimRight(out.String(), "\n")
}
