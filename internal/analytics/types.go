package analytics

// Totals summarizes the whole (filtered) dataset.
type Totals struct {
	Plays         int64   `yaml:"plays"`
	Hours         float64 `yaml:"hours"`
	UniqueArtists int64   `yaml:"unique_artists"`
	UniqueTracks  int64   `yaml:"unique_tracks"`
	FirstDate     string  `yaml:"first_date,omitempty"`
	LastDate      string  `yaml:"last_date,omitempty"`
}

type ArtistHours struct {
	Artist string  `yaml:"artist"`
	Hours  float64 `yaml:"hours"`
	Plays  int64   `yaml:"plays"`
}

type TrackHours struct {
	Track  string  `yaml:"track"`
	Artist string  `yaml:"artist"`
	Hours  float64 `yaml:"hours"`
	Plays  int64   `yaml:"plays"`
}

// Concentration is the HHI of listening-time shares by artist, with the
// loyalty label derived from it.
type Concentration struct {
	HHI   float64 `yaml:"hhi"`
	Label string  `yaml:"label"`
}

type HourBucket struct {
	Hour  int     `yaml:"hour"`
	Hours float64 `yaml:"hours"`
}

type WeekdayBucket struct {
	Weekday string  `yaml:"weekday"`
	Hours   float64 `yaml:"hours"`
}

type MonthBucket struct {
	Month         string  `yaml:"month"`
	Hours         float64 `yaml:"hours"`
	UniqueArtists int64   `yaml:"unique_artists"`
	UniqueTracks  int64   `yaml:"unique_tracks"`
}

type SkipStats struct {
	TotalPlays    int64   `yaml:"total_plays"`
	PlaysUnder30s int64   `yaml:"plays_lt_30s"`
	PctUnder30s   float64 `yaml:"pct_lt_30s"`
	PlaysUnder60s int64   `yaml:"plays_lt_60s"`
	PctUnder60s   float64 `yaml:"pct_lt_60s"`
}

type RepeatStats struct {
	Plays         int64   `yaml:"plays"`
	UniqueTracks  int64   `yaml:"unique_tracks"`
	PlaysPerTrack float64 `yaml:"plays_per_track"`
}

// Replay is a (track, artist) group with its session count. A session is one
// play event, however short.
type Replay struct {
	Track    string  `yaml:"track"`
	Artist   string  `yaml:"artist"`
	Sessions int64   `yaml:"sessions"`
	Minutes  float64 `yaml:"minutes"`
}

// Binge is an artist capturing a share of one month's total listening time.
type Binge struct {
	Month    string  `yaml:"month"`
	Artist   string  `yaml:"artist"`
	SharePct float64 `yaml:"share_pct"`
}

// DiscoveryPoint is one step of the cumulative new-artist curve.
type DiscoveryPoint struct {
	Date       string `yaml:"date"`
	NewArtists int64  `yaml:"new_artists"`
	Cumulative int64  `yaml:"cumulative_artists"`
}

// WhatIf reports the ranking after removing the single biggest artist.
type WhatIf struct {
	Dropped ArtistHours   `yaml:"dropped"`
	Ranking []ArtistHours `yaml:"ranking"`
}

type GenreHours struct {
	Genre string  `yaml:"genre"`
	Hours float64 `yaml:"hours"`
}
