package analytics

import (
	"fmt"
)

// Skip proxy thresholds in milliseconds. A play cut off before these marks is
// treated as a likely skip.
const (
	skipThresholdShort = 30000
	skipThresholdLong  = 60000
)

// SkipStats reports the fraction of plays under 30 and 60 seconds, as
// percentages rounded to one decimal. An empty store yields all zeroes.
func (a *Analytics) SkipStats(r Range) (SkipStats, error) {
	if err := r.Validate(); err != nil {
		return SkipStats{}, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT COUNT(*),
	       COALESCE(SUM(CASE WHEN msPlayed < %d THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(CASE WHEN msPlayed < %d THEN 1 ELSE 0 END), 0)
	FROM listens %s`, skipThresholdShort, skipThresholdLong, where)

	var s SkipStats
	err := a.db.QueryRow(query, args...).Scan(&s.TotalPlays, &s.PlaysUnder30s, &s.PlaysUnder60s)
	if err != nil {
		return SkipStats{}, fmt.Errorf("querying skip stats: %w", err)
	}

	if s.TotalPlays > 0 {
		s.PctUnder30s = round1(100 * float64(s.PlaysUnder30s) / float64(s.TotalPlays))
		s.PctUnder60s = round1(100 * float64(s.PlaysUnder60s) / float64(s.TotalPlays))
	}
	return s, nil
}

// RepeatRate is total plays divided by distinct tracks, rounded to two
// decimals. Zero distinct tracks yields 0.0.
func (a *Analytics) RepeatRate(r Range) (RepeatStats, error) {
	if err := r.Validate(); err != nil {
		return RepeatStats{}, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT COUNT(*), COUNT(DISTINCT trackName)
	FROM listens %s`, where)

	var s RepeatStats
	err := a.db.QueryRow(query, args...).Scan(&s.Plays, &s.UniqueTracks)
	if err != nil {
		return RepeatStats{}, fmt.Errorf("querying repeat rate: %w", err)
	}

	if s.UniqueTracks > 0 {
		s.PlaysPerTrack = round2(float64(s.Plays) / float64(s.UniqueTracks))
	}
	return s, nil
}

// Replays returns (track, artist) groups with at least minSessions play
// sessions, most-replayed first, minutes breaking ties.
func (a *Analytics) Replays(r Range, minSessions int, limit int) ([]Replay, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT trackName, artistName, COUNT(*) AS sessions,
	       ROUND(SUM(msPlayed) / 60000.0, 1) AS minutes
	FROM listens %s
	GROUP BY trackName, artistName
	HAVING sessions >= ?
	ORDER BY sessions DESC, minutes DESC
	LIMIT ?`, where)
	args = append(args, minSessions, limit)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying replays: %w", err)
	}
	defer rows.Close()

	var results []Replay
	for rows.Next() {
		var rep Replay
		if err := rows.Scan(&rep.Track, &rep.Artist, &rep.Sessions, &rep.Minutes); err != nil {
			return nil, err
		}
		results = append(results, rep)
	}
	return results, rows.Err()
}

// GuiltyPleasures returns high-frequency, low-total-time tracks: at least five
// sessions but under twelve minutes of listening in total.
func (a *Analytics) GuiltyPleasures(r Range, limit int) ([]Replay, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT trackName, artistName, COUNT(*) AS sessions,
	       ROUND(SUM(msPlayed) / 60000.0, 1) AS minutes
	FROM listens %s
	GROUP BY trackName, artistName
	HAVING sessions >= 5 AND SUM(msPlayed) < 12 * 60000
	ORDER BY sessions DESC, minutes ASC
	LIMIT ?`, where)
	args = append(args, limit)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying guilty pleasures: %w", err)
	}
	defer rows.Close()

	var results []Replay
	for rows.Next() {
		var rep Replay
		if err := rows.Scan(&rep.Track, &rep.Artist, &rep.Sessions, &rep.Minutes); err != nil {
			return nil, err
		}
		results = append(results, rep)
	}
	return results, rows.Err()
}
