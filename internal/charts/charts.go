// Package charts renders PNG charts from analytics results.
package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/streamlens/streamlens/internal/analytics"
)

const (
	wideWidth  = 10 * vg.Inch
	wideHeight = 3 * vg.Inch
)

var barWidth = vg.Points(20)

// TopArtists renders a bar chart of artists by hours listened.
func TopArtists(rows []analytics.ArtistHours, path string) error {
	if len(rows) == 0 {
		return nil
	}

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.Hours
		names[i] = r.Artist
	}

	p := plot.New()
	p.Title.Text = "Top Artists by Hours Listened"
	p.Y.Label.Text = "Hours"

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("building top artists chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = -0.785
	p.X.Tick.Label.XAlign = -0.9

	return save(p, path)
}

// ByHour renders listening hours over the hour of day.
func ByHour(rows []analytics.HourBucket, path string) error {
	if len(rows) == 0 {
		return nil
	}

	xys := make(plotter.XYs, len(rows))
	for i, r := range rows {
		xys[i].X = float64(r.Hour)
		xys[i].Y = r.Hours
	}

	p := plot.New()
	p.Title.Text = "Listening by Hour of Day"
	p.X.Label.Text = "Hour (0-23)"
	p.Y.Label.Text = "Hours Listened"

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("building by-hour chart: %w", err)
	}
	p.Add(line, points)

	return save(p, path)
}

// ByWeekday renders listening hours per weekday, Monday first.
func ByWeekday(rows []analytics.WeekdayBucket, path string) error {
	if len(rows) == 0 {
		return nil
	}

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.Hours
		names[i] = r.Weekday
	}

	p := plot.New()
	p.Title.Text = "Listening by Weekday"
	p.Y.Label.Text = "Hours Listened"

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("building weekday chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	return save(p, path)
}

// MonthlyTrend renders listening hours per calendar month.
func MonthlyTrend(rows []analytics.MonthBucket, path string) error {
	if len(rows) == 0 {
		return nil
	}

	xys := make(plotter.XYs, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		xys[i].X = float64(i)
		xys[i].Y = r.Hours
		names[i] = r.Month
	}

	p := plot.New()
	p.Title.Text = "Monthly Listening Hours"
	p.Y.Label.Text = "Hours"

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("building monthly trend chart: %w", err)
	}
	p.Add(line, points)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = -0.785
	p.X.Tick.Label.XAlign = -0.9

	return save(p, path)
}

// Discovery renders the cumulative new-artist curve.
func Discovery(rows []analytics.DiscoveryPoint, path string) error {
	if len(rows) == 0 {
		return nil
	}

	xys := make(plotter.XYs, len(rows))
	for i, r := range rows {
		xys[i].X = float64(i)
		xys[i].Y = float64(r.Cumulative)
	}

	p := plot.New()
	p.Title.Text = "Discovery Over Time"
	p.X.Label.Text = fmt.Sprintf("Listening days (%s to %s)", rows[0].Date, rows[len(rows)-1].Date)
	p.Y.Label.Text = "Cumulative Artists"

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("building discovery chart: %w", err)
	}
	p.Add(line)

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(wideWidth, wideHeight, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
