package analytics

import (
	"fmt"
)

// Binges lists, for every (month, artist) pair with at least thirty minutes of
// listening, that artist's share of the month's total listening time. Ordered
// by month, then share descending.
func (a *Analytics) Binges(r Range) ([]Binge, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	WITH month_artist AS (
	  SELECT strftime('%%Y-%%m', endTime) AS month, artistName, SUM(msPlayed) AS ms_month_artist
	  FROM listens %s
	  GROUP BY month, artistName
	),
	month_total AS (
	  SELECT month, SUM(ms_month_artist) AS ms_month_total FROM month_artist GROUP BY month
	)
	SELECT m.month, m.artistName, ROUND(100.0 * m.ms_month_artist / t.ms_month_total, 1) AS share_pct
	FROM month_artist m
	JOIN month_total t USING(month)
	WHERE m.ms_month_artist >= 30 * 60 * 1000
	ORDER BY m.month, share_pct DESC`, where)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying binges: %w", err)
	}
	defer rows.Close()

	var results []Binge
	for rows.Next() {
		var b Binge
		if err := rows.Scan(&b.Month, &b.Artist, &b.SharePct); err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}

// Discovery builds the new-artist curve: for each calendar date in the
// observed range, the number of artists first seen that date, and a running
// cumulative sum. The cumulative column is non-decreasing and ends at the
// total distinct-artist count.
func (a *Analytics) Discovery(r Range) ([]DiscoveryPoint, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()
	// The same filter feeds both CTEs.
	args = append(args, args...)

	query := fmt.Sprintf(`
	WITH first_seen AS (
	  SELECT artistName, MIN(date(endTime)) AS first_date FROM listens %s GROUP BY artistName
	),
	calendar AS (SELECT DISTINCT date(endTime) AS d FROM listens %s),
	daily AS (
	  SELECT c.d, COALESCE(SUM(CASE WHEN f.first_date = c.d THEN 1 ELSE 0 END), 0) AS new_artists
	  FROM calendar c LEFT JOIN first_seen f ON f.first_date = c.d
	  GROUP BY c.d
	)
	SELECT d, new_artists,
	       SUM(new_artists) OVER (ORDER BY d ROWS UNBOUNDED PRECEDING) AS cumulative_artists
	FROM daily ORDER BY d`, where, where)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying discovery curve: %w", err)
	}
	defer rows.Close()

	var results []DiscoveryPoint
	for rows.Next() {
		var p DiscoveryPoint
		if err := rows.Scan(&p.Date, &p.NewArtists, &p.Cumulative); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
