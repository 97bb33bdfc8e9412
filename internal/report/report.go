// Package report assembles the full analytics catalogue into downstream
// artifacts: a markdown report, per-metric CSV files, and a short highlights
// file. It is a consumer of the analytics layer and never touches SQL itself.
package report

import (
	"fmt"
	"sort"

	"github.com/streamlens/streamlens/internal/analytics"
	"github.com/streamlens/streamlens/internal/genres"
)

// Result-table limits, matching the report surfaces.
const (
	topLimit       = 10
	replayLimit    = 20
	replayMinPlays = 3
	genreLimit     = 15
)

// Data is every metric the report surfaces, computed in one pass.
type Data struct {
	Totals          analytics.Totals
	TopArtists      []analytics.ArtistHours
	TopTracks       []analytics.TrackHours
	Concentration   analytics.Concentration
	ByHour          []analytics.HourBucket
	ByWeekday       []analytics.WeekdayBucket
	ByMonth         []analytics.MonthBucket
	Skips           analytics.SkipStats
	Repeats         analytics.RepeatStats
	Replays         []analytics.Replay
	GuiltyPleasures []analytics.Replay
	Binges          []analytics.Binge
	Discovery       []analytics.DiscoveryPoint
	WhatIf          analytics.WhatIf
	Genres          []analytics.GenreHours
	GenresAvailable bool
}

// Build runs the whole catalogue over one range.
func Build(a *analytics.Analytics, genreTable genres.Table, r analytics.Range) (*Data, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	d := &Data{}
	var err error

	if d.Totals, err = a.Totals(r); err != nil {
		return nil, err
	}
	if d.TopArtists, err = a.TopArtists(r, topLimit); err != nil {
		return nil, err
	}
	if d.TopTracks, err = a.TopTracks(r, topLimit); err != nil {
		return nil, err
	}
	if d.Concentration, err = a.Concentration(r); err != nil {
		return nil, err
	}
	if d.ByHour, err = a.ByHour(r); err != nil {
		return nil, err
	}
	if d.ByWeekday, err = a.ByWeekday(r); err != nil {
		return nil, err
	}
	if d.ByMonth, err = a.ByMonth(r); err != nil {
		return nil, err
	}
	if d.Skips, err = a.SkipStats(r); err != nil {
		return nil, err
	}
	if d.Repeats, err = a.RepeatRate(r); err != nil {
		return nil, err
	}
	if d.Replays, err = a.Replays(r, replayMinPlays, replayLimit); err != nil {
		return nil, err
	}
	if d.GuiltyPleasures, err = a.GuiltyPleasures(r, replayLimit); err != nil {
		return nil, err
	}
	if d.Binges, err = a.Binges(r); err != nil {
		return nil, err
	}
	if d.Discovery, err = a.Discovery(r); err != nil {
		return nil, err
	}
	if d.WhatIf, err = a.WhatIfDropTop(r, topLimit); err != nil {
		return nil, err
	}

	if genreTable != nil {
		d.GenresAvailable = true
		if d.Genres, err = a.TopGenres(r, genreTable, genreLimit); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// PeakHours labels the top-three hours of day by listening time, e.g.
// "22h, 21h, 20h".
func (d *Data) PeakHours() string {
	buckets := append([]analytics.HourBucket(nil), d.ByHour...)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Hours > buckets[j].Hours })
	var labels []string
	for i, b := range buckets {
		if i == 3 {
			break
		}
		labels = append(labels, fmt.Sprintf("%dh", b.Hour))
	}
	return join(labels)
}

// TopWeekdays labels the top-three weekdays by listening time.
func (d *Data) TopWeekdays() string {
	buckets := append([]analytics.WeekdayBucket(nil), d.ByWeekday...)
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Hours > buckets[j].Hours })
	var labels []string
	for i, b := range buckets {
		if i == 3 {
			break
		}
		labels = append(labels, b.Weekday)
	}
	return join(labels)
}

func join(labels []string) string {
	if len(labels) == 0 {
		return "n/a"
	}
	out := labels[0]
	for _, l := range labels[1:] {
		out += ", " + l
	}
	return out
}
