// Package analytics is the catalogue of aggregation queries over the listens
// store. Every metric is a named function: callers (CLI commands, the report
// builder, chart rendering) share one definition per metric.
//
// All queries are read-only and recomputed per invocation. An empty store
// yields empty or zero-valued results, never an error; zero denominators
// (HHI, repeat rate, skip percentages) are defined as 0.0.
package analytics

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

type Analytics struct {
	db *sql.DB
}

func New(db *sql.DB) *Analytics {
	return &Analytics{db: db}
}

// Range is an optional date filter, inclusive of both end dates. The zero
// Range means full history.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Validate fails fast on an inverted range rather than silently returning an
// empty result.
func (r Range) Validate() error {
	if r.IsZero() {
		return nil
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("invalid date range: start %s is after end %s",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return nil
}

// filter returns a WHERE clause for the range, or "" for full history. Every
// query interpolates it against the listens table.
func (r Range) filter() (string, []any) {
	if r.IsZero() {
		return "", nil
	}
	return "WHERE date(endTime) BETWEEN ? AND ?",
		[]any{r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")}
}

// Totals returns overall play and hour counts plus the observed date range.
func (a *Analytics) Totals(r Range) (Totals, error) {
	if err := r.Validate(); err != nil {
		return Totals{}, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT COUNT(*),
	       COALESCE(SUM(msPlayed), 0) / 3600000.0,
	       COUNT(DISTINCT artistName),
	       COUNT(DISTINCT trackName),
	       COALESCE(MIN(date(endTime)), ''),
	       COALESCE(MAX(date(endTime)), '')
	FROM listens %s`, where)

	var t Totals
	err := a.db.QueryRow(query, args...).Scan(
		&t.Plays, &t.Hours, &t.UniqueArtists, &t.UniqueTracks, &t.FirstDate, &t.LastDate)
	if err != nil {
		return Totals{}, fmt.Errorf("querying totals: %w", err)
	}
	return t, nil
}

// Loyalty label thresholds for the concentration index. The canonical set:
// below 0.07 is an explorer, below 0.12 balanced, everything above a loyalist.
const (
	explorerThreshold = 0.07
	balancedThreshold = 0.12
)

// Concentration computes the HHI over listening-time shares per artist:
// partition total ms by artist, square each share, and sum. Range (0, 1] for
// any non-empty dataset; 1 means all time belongs to one artist, 1/k means k
// equal artists.
func (a *Analytics) Concentration(r Range) (Concentration, error) {
	if err := r.Validate(); err != nil {
		return Concentration{}, err
	}
	where, args := r.filter()

	query := fmt.Sprintf(`
	SELECT SUM(msPlayed)
	FROM listens %s
	GROUP BY artistName`, where)

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return Concentration{}, fmt.Errorf("querying artist shares: %w", err)
	}
	defer rows.Close()

	var perArtist []float64
	var total float64
	for rows.Next() {
		var ms float64
		if err := rows.Scan(&ms); err != nil {
			return Concentration{}, err
		}
		perArtist = append(perArtist, ms)
		total += ms
	}
	if err := rows.Err(); err != nil {
		return Concentration{}, err
	}

	if total == 0 {
		return Concentration{HHI: 0, Label: "no data"}, nil
	}

	var hhi float64
	for _, ms := range perArtist {
		share := ms / total
		hhi += share * share
	}
	return Concentration{HHI: hhi, Label: loyaltyLabel(hhi)}, nil
}

func loyaltyLabel(hhi float64) string {
	switch {
	case hhi < explorerThreshold:
		return "Explorer"
	case hhi < balancedThreshold:
		return "Balanced"
	default:
		return "Loyalist"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
