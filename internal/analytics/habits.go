package analytics

import (
	"fmt"
)

// ByHour sums listening hours per hour of day (0-23). Hours with no plays are
// absent from the result.
func (a *Analytics) ByHour(r Range) ([]HourBucket, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT CAST(strftime('%%H', endTime) AS INTEGER) AS hour,
	       ROUND(SUM(msPlayed) / 3600000.0, 2) AS hours
	FROM listens %s
	GROUP BY hour
	ORDER BY hour`, where)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying hours by hour of day: %w", err)
	}
	defer rows.Close()

	var results []HourBucket
	for rows.Next() {
		var b HourBucket
		if err := rows.Scan(&b.Hour, &b.Hours); err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}

// ByWeekday sums listening hours per weekday, ordered Monday through Sunday.
func (a *Analytics) ByWeekday(r Range) ([]WeekdayBucket, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	// strftime('%w') counts from Sunday; shift so Monday sorts first.
	query := fmt.Sprintf(`
	SELECT CASE strftime('%%w', endTime)
	         WHEN '0' THEN 'Sun' WHEN '1' THEN 'Mon' WHEN '2' THEN 'Tue'
	         WHEN '3' THEN 'Wed' WHEN '4' THEN 'Thu' WHEN '5' THEN 'Fri'
	         WHEN '6' THEN 'Sat' END AS weekday,
	       ROUND(SUM(msPlayed) / 3600000.0, 2) AS hours
	FROM listens %s
	GROUP BY weekday
	ORDER BY (CAST(strftime('%%w', endTime) AS INTEGER) + 6) %% 7`, where)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying hours by weekday: %w", err)
	}
	defer rows.Close()

	var results []WeekdayBucket
	for rows.Next() {
		var b WeekdayBucket
		if err := rows.Scan(&b.Weekday, &b.Hours); err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}

// ByMonth sums listening hours per calendar month, with distinct artist and
// track counts per month.
func (a *Analytics) ByMonth(r Range) ([]MonthBucket, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT strftime('%%Y-%%m', endTime) AS month,
	       ROUND(SUM(msPlayed) / 3600000.0, 2) AS hours,
	       COUNT(DISTINCT artistName),
	       COUNT(DISTINCT trackName)
	FROM listens %s
	GROUP BY month
	ORDER BY month`, where)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying hours by month: %w", err)
	}
	defer rows.Close()

	var results []MonthBucket
	for rows.Next() {
		var b MonthBucket
		if err := rows.Scan(&b.Month, &b.Hours, &b.UniqueArtists, &b.UniqueTracks); err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}
