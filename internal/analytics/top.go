package analytics

import (
	"fmt"
)

// TopArtists ranks artists by total hours, plays breaking ties.
func (a *Analytics) TopArtists(r Range, limit int) ([]ArtistHours, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT artistName, ROUND(SUM(msPlayed) / 3600000.0, 2) AS hours, COUNT(*) AS plays
	FROM listens %s
	GROUP BY artistName
	ORDER BY hours DESC, plays DESC
	LIMIT ?`, where)
	args = append(args, limit)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying top artists: %w", err)
	}
	defer rows.Close()

	var results []ArtistHours
	for rows.Next() {
		var ah ArtistHours
		if err := rows.Scan(&ah.Artist, &ah.Hours, &ah.Plays); err != nil {
			return nil, err
		}
		results = append(results, ah)
	}
	return results, rows.Err()
}

// TopTracks ranks (track, artist) pairs by total hours, plays breaking ties.
func (a *Analytics) TopTracks(r Range, limit int) ([]TrackHours, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT trackName, artistName, ROUND(SUM(msPlayed) / 3600000.0, 2) AS hours, COUNT(*) AS plays
	FROM listens %s
	GROUP BY trackName, artistName
	ORDER BY hours DESC, plays DESC
	LIMIT ?`, where)
	args = append(args, limit)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying top tracks: %w", err)
	}
	defer rows.Close()

	var results []TrackHours
	for rows.Next() {
		var th TrackHours
		if err := rows.Scan(&th.Track, &th.Artist, &th.Hours, &th.Plays); err != nil {
			return nil, err
		}
		results = append(results, th)
	}
	return results, rows.Err()
}

// WhatIfDropTop identifies the artist with the most total listening time and
// recomputes the ranking without them. On an empty store the result is empty;
// with a single artist the new ranking is empty.
func (a *Analytics) WhatIfDropTop(r Range, limit int) (WhatIf, error) {
	top, err := a.TopArtists(r, 1)
	if err != nil {
		return WhatIf{}, err
	}
	if len(top) == 0 {
		return WhatIf{}, nil
	}

	where, args := r.filter()
	if where == "" {
		where = "WHERE artistName != ?"
	} else {
		where += " AND artistName != ?"
	}
	args = append(args, top[0].Artist)

	query := fmt.Sprintf(`
	SELECT artistName, ROUND(SUM(msPlayed) / 3600000.0, 2) AS hours, COUNT(*) AS plays
	FROM listens %s
	GROUP BY artistName
	ORDER BY hours DESC, plays DESC
	LIMIT ?`, where)
	args = append(args, limit)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return WhatIf{}, fmt.Errorf("querying ranking without top artist: %w", err)
	}
	defer rows.Close()

	result := WhatIf{Dropped: top[0]}
	for rows.Next() {
		var ah ArtistHours
		if err := rows.Scan(&ah.Artist, &ah.Hours, &ah.Plays); err != nil {
			return WhatIf{}, err
		}
		result.Ranking = append(result.Ranking, ah)
	}
	return result, rows.Err()
}
