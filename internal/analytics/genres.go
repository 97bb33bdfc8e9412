package analytics

import (
	"fmt"
	"sort"
)

// TopGenres rolls artist hours up into genres using an external artist→genres
// mapping. Each artist's hours are split equally across its listed genres;
// artists absent from the mapping count as "Unknown".
func (a *Analytics) TopGenres(r Range, genres map[string][]string, limit int) ([]GenreHours, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT artistName, SUM(msPlayed) / 3600000.0 AS hours
	FROM listens %s
	GROUP BY artistName`, where)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying artist hours: %w", err)
	}
	defer rows.Close()

	byGenre := make(map[string]float64)
	for rows.Next() {
		var artist string
		var hours float64
		if err := rows.Scan(&artist, &hours); err != nil {
			return nil, err
		}

		list := genres[artist]
		if len(list) == 0 {
			list = []string{"Unknown"}
		}
		split := hours / float64(len(list))
		for _, g := range list {
			byGenre[g] += split
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]GenreHours, 0, len(byGenre))
	for genre, hours := range byGenre {
		results = append(results, GenreHours{Genre: genre, Hours: round2(hours)})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Hours != results[j].Hours {
			return results[i].Hours > results[j].Hours
		}
		return results[i].Genre < results[j].Genre
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
