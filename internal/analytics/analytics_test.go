package analytics

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"

	"github.com/streamlens/streamlens/internal/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(store.Schema); err != nil {
		t.Fatalf("failed to create listens table: %v", err)
	}
	return db
}

func insertListen(t *testing.T, db *sql.DB, endTime, artist, track string, msPlayed int64) {
	t.Helper()
	_, err := db.Exec("INSERT INTO listens (endTime, artistName, trackName, msPlayed) VALUES (?, ?, ?, ?)",
		endTime, artist, track, msPlayed)
	if err != nil {
		t.Fatalf("inserting listen: %v", err)
	}
}

const hourMs = 3600000

func TestTopArtistsOrdering(t *testing.T) {
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-01 10:00", "Artist B", "Track B", 2*hourMs)
	insertListen(t, db, "2021-01-02 10:00", "Artist A", "Track A1", 3*hourMs)
	insertListen(t, db, "2021-01-03 10:00", "Artist A", "Track A2", 2*hourMs)

	got, err := New(db).TopArtists(Range{}, 10)
	if err != nil {
		t.Fatalf("TopArtists: %v", err)
	}

	want := []ArtistHours{
		{Artist: "Artist A", Hours: 5, Plays: 2},
		{Artist: "Artist B", Hours: 2, Plays: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopArtists mismatch (-want +got):\n%s", diff)
	}
}

func TestTopArtistsRangeFilter(t *testing.T) {
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-15 10:00", "Artist A", "Track A", hourMs)
	insertListen(t, db, "2021-02-15 10:00", "Artist B", "Track B", hourMs)

	r := Range{
		Start: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	got, err := New(db).TopArtists(r, 10)
	if err != nil {
		t.Fatalf("TopArtists: %v", err)
	}
	if len(got) != 1 || got[0].Artist != "Artist B" {
		t.Errorf("Expected only Artist B in February, got %+v", got)
	}

	// The range is inclusive of both end dates.
	r = Range{
		Start: time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	got, err = New(db).TopArtists(r, 10)
	if err != nil {
		t.Fatalf("TopArtists: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected both artists in inclusive range, got %+v", got)
	}
}

func TestInvalidRangeFailsFast(t *testing.T) {
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", hourMs)

	r := Range{
		Start: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := New(db).TopArtists(r, 10); err == nil {
		t.Error("TopArtists should reject start > end")
	}
	if _, err := New(db).Totals(r); err == nil {
		t.Error("Totals should reject start > end")
	}
	if _, err := New(db).Discovery(r); err == nil {
		t.Error("Discovery should reject start > end")
	}
}

func TestConcentrationLabels(t *testing.T) {
	// Shares 0.5/0.3/0.2 give HHI 0.38, a Loyalist.
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", 50*hourMs)
	insertListen(t, db, "2021-01-01 11:00", "Artist B", "Track B", 30*hourMs)
	insertListen(t, db, "2021-01-01 12:00", "Artist C", "Track C", 20*hourMs)

	got, err := New(db).Concentration(Range{})
	if err != nil {
		t.Fatalf("Concentration: %v", err)
	}
	if math.Abs(got.HHI-0.38) > 1e-9 {
		t.Errorf("Expected HHI 0.38, got %v", got.HHI)
	}
	if got.Label != "Loyalist" {
		t.Errorf("Expected Loyalist, got %q", got.Label)
	}
}

func TestConcentrationBounds(t *testing.T) {
	// A single artist concentrates to exactly 1.
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", hourMs)
	insertListen(t, db, "2021-01-01 11:00", "Artist A", "Track B", hourMs)

	got, err := New(db).Concentration(Range{})
	if err != nil {
		t.Fatalf("Concentration: %v", err)
	}
	if got.HHI != 1 {
		t.Errorf("Expected HHI 1 for a single artist, got %v", got.HHI)
	}

	// k equal-share artists give 1/k, an Explorer for large k.
	db = setupTestDB(t)
	for _, artist := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J",
		"K", "L", "M", "N", "O", "P", "Q", "R", "S", "T"} {
		insertListen(t, db, "2021-01-01 10:00", artist, "Track "+artist, hourMs)
	}
	got, err = New(db).Concentration(Range{})
	if err != nil {
		t.Fatalf("Concentration: %v", err)
	}
	if math.Abs(got.HHI-0.05) > 1e-9 {
		t.Errorf("Expected HHI 1/20, got %v", got.HHI)
	}
	if got.Label != "Explorer" {
		t.Errorf("Expected Explorer, got %q", got.Label)
	}
}

func TestRepeatRate(t *testing.T) {
	// 10 plays across 4 distinct tracks: 2.5 plays per track.
	db := setupTestDB(t)
	tracks := []string{"T1", "T2", "T3", "T4", "T1", "T2", "T1", "T2", "T3", "T4"}
	for i, track := range tracks {
		insertListen(t, db, "2021-01-01 10:00", "Artist A", track, int64(1000*(i+1)))
	}

	got, err := New(db).RepeatRate(Range{})
	if err != nil {
		t.Fatalf("RepeatRate: %v", err)
	}
	if got.Plays != 10 || got.UniqueTracks != 4 {
		t.Fatalf("Expected 10 plays over 4 tracks, got %+v", got)
	}
	if got.PlaysPerTrack != 2.5 {
		t.Errorf("Expected repeat rate 2.5, got %v", got.PlaysPerTrack)
	}
}

func TestSkipStats(t *testing.T) {
	db := setupTestDB(t)
	for _, ms := range []int64{10000, 20000, 40000, 70000, 90000} {
		insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track", ms)
	}

	got, err := New(db).SkipStats(Range{})
	if err != nil {
		t.Fatalf("SkipStats: %v", err)
	}
	if got.PctUnder30s != 40.0 {
		t.Errorf("Expected pct_lt_30s 40.0, got %v", got.PctUnder30s)
	}
	if got.PctUnder60s != 60.0 {
		t.Errorf("Expected pct_lt_60s 60.0, got %v", got.PctUnder60s)
	}
}

func TestDiscoveryMonotonic(t *testing.T) {
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", hourMs)
	insertListen(t, db, "2021-01-02 10:00", "Artist A", "Track A", hourMs)
	insertListen(t, db, "2021-01-02 11:00", "Artist B", "Track B", hourMs)
	insertListen(t, db, "2021-01-04 10:00", "Artist C", "Track C", hourMs)
	insertListen(t, db, "2021-01-05 10:00", "Artist A", "Track A2", hourMs)

	got, err := New(db).Discovery(Range{})
	if err != nil {
		t.Fatalf("Discovery: %v", err)
	}

	want := []DiscoveryPoint{
		{Date: "2021-01-01", NewArtists: 1, Cumulative: 1},
		{Date: "2021-01-02", NewArtists: 1, Cumulative: 2},
		{Date: "2021-01-04", NewArtists: 1, Cumulative: 3},
		{Date: "2021-01-05", NewArtists: 0, Cumulative: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discovery mismatch (-want +got):\n%s", diff)
	}

	// The curve never decreases and ends at the distinct-artist count.
	for i := 1; i < len(got); i++ {
		if got[i].Cumulative < got[i-1].Cumulative {
			t.Errorf("Cumulative decreased at %s", got[i].Date)
		}
	}
	totals, err := New(db).Totals(Range{})
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got[len(got)-1].Cumulative != totals.UniqueArtists {
		t.Errorf("Final cumulative %d != distinct artists %d",
			got[len(got)-1].Cumulative, totals.UniqueArtists)
	}
}

func TestWhatIfDropTop(t *testing.T) {
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", 10*hourMs)
	insertListen(t, db, "2021-01-01 11:00", "Artist B", "Track B", 6*hourMs)
	insertListen(t, db, "2021-01-01 12:00", "Artist C", "Track C", 4*hourMs)

	got, err := New(db).WhatIfDropTop(Range{}, 10)
	if err != nil {
		t.Fatalf("WhatIfDropTop: %v", err)
	}
	if got.Dropped.Artist != "Artist A" {
		t.Errorf("Expected to drop Artist A, got %q", got.Dropped.Artist)
	}
	if len(got.Ranking) != 2 || got.Ranking[0].Artist != "Artist B" {
		t.Errorf("Expected Artist B as new top, got %+v", got.Ranking)
	}
	if got.Ranking[0].Hours != 6 {
		t.Errorf("Expected new top at 6 hours, got %v", got.Ranking[0].Hours)
	}
}

func TestReplaysThresholds(t *testing.T) {
	db := setupTestDB(t)
	for i := 0; i < 5; i++ {
		insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", 60000)
	}
	for i := 0; i < 3; i++ {
		insertListen(t, db, "2021-01-01 11:00", "Artist B", "Track B", 60000)
	}
	insertListen(t, db, "2021-01-01 12:00", "Artist C", "Track C", 60000)

	atThree, err := New(db).Replays(Range{}, 3, 20)
	if err != nil {
		t.Fatalf("Replays: %v", err)
	}
	if len(atThree) != 2 {
		t.Fatalf("Expected 2 tracks with >= 3 sessions, got %+v", atThree)
	}
	if atThree[0].Track != "Track A" || atThree[0].Sessions != 5 {
		t.Errorf("Expected Track A with 5 sessions first, got %+v", atThree[0])
	}

	atFive, err := New(db).Replays(Range{}, 5, 20)
	if err != nil {
		t.Fatalf("Replays: %v", err)
	}
	if len(atFive) != 1 || atFive[0].Track != "Track A" {
		t.Errorf("Expected only Track A with >= 5 sessions, got %+v", atFive)
	}
}

func TestGuiltyPleasures(t *testing.T) {
	db := setupTestDB(t)
	// 6 sessions, 6 minutes total: guilty.
	for i := 0; i < 6; i++ {
		insertListen(t, db, "2021-01-01 10:00", "Artist A", "Short Hook", 60000)
	}
	// 6 sessions, 30 minutes total: too much time.
	for i := 0; i < 6; i++ {
		insertListen(t, db, "2021-01-01 11:00", "Artist B", "Long Favorite", 5*60000)
	}
	// 2 sessions: too few.
	for i := 0; i < 2; i++ {
		insertListen(t, db, "2021-01-01 12:00", "Artist C", "Rare Short", 30000)
	}

	got, err := New(db).GuiltyPleasures(Range{}, 20)
	if err != nil {
		t.Fatalf("GuiltyPleasures: %v", err)
	}
	if len(got) != 1 || got[0].Track != "Short Hook" {
		t.Errorf("Expected only Short Hook, got %+v", got)
	}
}

func TestBinges(t *testing.T) {
	db := setupTestDB(t)
	// January: Artist A 45 min, Artist B 15 min. Only A crosses 30 minutes;
	// its share is 75%.
	insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", 45*60000)
	insertListen(t, db, "2021-01-02 10:00", "Artist B", "Track B", 15*60000)
	// February: Artist B 60 min, 100% share.
	insertListen(t, db, "2021-02-01 10:00", "Artist B", "Track B", 60*60000)

	got, err := New(db).Binges(Range{})
	if err != nil {
		t.Fatalf("Binges: %v", err)
	}

	want := []Binge{
		{Month: "2021-01", Artist: "Artist A", SharePct: 75},
		{Month: "2021-02", Artist: "Artist B", SharePct: 100},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Binges mismatch (-want +got):\n%s", diff)
	}
}

func TestByWeekdayOrder(t *testing.T) {
	db := setupTestDB(t)
	// 2021-01-03 is a Sunday, 2021-01-04 a Monday.
	insertListen(t, db, "2021-01-03 10:00", "Artist A", "Track A", hourMs)
	insertListen(t, db, "2021-01-04 10:00", "Artist A", "Track A", 2*hourMs)

	got, err := New(db).ByWeekday(Range{})
	if err != nil {
		t.Fatalf("ByWeekday: %v", err)
	}

	want := []WeekdayBucket{
		{Weekday: "Mon", Hours: 2},
		{Weekday: "Sun", Hours: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ByWeekday mismatch (-want +got):\n%s", diff)
	}
}

func TestByHourAndMonth(t *testing.T) {
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-03 08:10", "Artist A", "Track A", hourMs)
	insertListen(t, db, "2021-01-04 08:50", "Artist B", "Track B", hourMs)
	insertListen(t, db, "2021-02-05 22:00", "Artist A", "Track A", hourMs)

	hours, err := New(db).ByHour(Range{})
	if err != nil {
		t.Fatalf("ByHour: %v", err)
	}
	wantHours := []HourBucket{{Hour: 8, Hours: 2}, {Hour: 22, Hours: 1}}
	if diff := cmp.Diff(wantHours, hours); diff != "" {
		t.Errorf("ByHour mismatch (-want +got):\n%s", diff)
	}

	months, err := New(db).ByMonth(Range{})
	if err != nil {
		t.Fatalf("ByMonth: %v", err)
	}
	wantMonths := []MonthBucket{
		{Month: "2021-01", Hours: 2, UniqueArtists: 2, UniqueTracks: 2},
		{Month: "2021-02", Hours: 1, UniqueArtists: 1, UniqueTracks: 1},
	}
	if diff := cmp.Diff(wantMonths, months); diff != "" {
		t.Errorf("ByMonth mismatch (-want +got):\n%s", diff)
	}
}

func TestTopGenres(t *testing.T) {
	db := setupTestDB(t)
	insertListen(t, db, "2021-01-01 10:00", "Artist A", "Track A", 4*hourMs)
	insertListen(t, db, "2021-01-01 11:00", "Artist B", "Track B", 2*hourMs)

	mapping := map[string][]string{
		"Artist A": {"Rock", "Indie"},
	}
	got, err := New(db).TopGenres(Range{}, mapping, 10)
	if err != nil {
		t.Fatalf("TopGenres: %v", err)
	}

	// Artist A's 4 hours split across Rock and Indie; Artist B is unmapped.
	want := []GenreHours{
		{Genre: "Indie", Hours: 2},
		{Genre: "Rock", Hours: 2},
		{Genre: "Unknown", Hours: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopGenres mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyStoreAllQueries(t *testing.T) {
	db := setupTestDB(t)
	a := New(db)

	totals, err := a.Totals(Range{})
	if err != nil {
		t.Errorf("Totals on empty store: %v", err)
	}
	if totals.Plays != 0 || totals.Hours != 0 {
		t.Errorf("Expected zero totals, got %+v", totals)
	}

	conc, err := a.Concentration(Range{})
	if err != nil {
		t.Errorf("Concentration on empty store: %v", err)
	}
	if conc.HHI != 0 {
		t.Errorf("Expected HHI 0 on empty store, got %v", conc.HHI)
	}

	skips, err := a.SkipStats(Range{})
	if err != nil {
		t.Errorf("SkipStats on empty store: %v", err)
	}
	if skips.PctUnder30s != 0 || skips.PctUnder60s != 0 {
		t.Errorf("Expected zero skip percentages, got %+v", skips)
	}

	repeats, err := a.RepeatRate(Range{})
	if err != nil {
		t.Errorf("RepeatRate on empty store: %v", err)
	}
	if repeats.PlaysPerTrack != 0 {
		t.Errorf("Expected repeat rate 0, got %v", repeats.PlaysPerTrack)
	}

	if rows, err := a.TopArtists(Range{}, 10); err != nil || len(rows) != 0 {
		t.Errorf("TopArtists on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.TopTracks(Range{}, 10); err != nil || len(rows) != 0 {
		t.Errorf("TopTracks on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.ByHour(Range{}); err != nil || len(rows) != 0 {
		t.Errorf("ByHour on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.ByWeekday(Range{}); err != nil || len(rows) != 0 {
		t.Errorf("ByWeekday on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.ByMonth(Range{}); err != nil || len(rows) != 0 {
		t.Errorf("ByMonth on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.Replays(Range{}, 3, 20); err != nil || len(rows) != 0 {
		t.Errorf("Replays on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.GuiltyPleasures(Range{}, 20); err != nil || len(rows) != 0 {
		t.Errorf("GuiltyPleasures on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.Binges(Range{}); err != nil || len(rows) != 0 {
		t.Errorf("Binges on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.Discovery(Range{}); err != nil || len(rows) != 0 {
		t.Errorf("Discovery on empty store: rows=%v err=%v", rows, err)
	}
	if rows, err := a.TopGenres(Range{}, nil, 10); err != nil || len(rows) != 0 {
		t.Errorf("TopGenres on empty store: rows=%v err=%v", rows, err)
	}

	whatIf, err := a.WhatIfDropTop(Range{}, 10)
	if err != nil {
		t.Errorf("WhatIfDropTop on empty store: %v", err)
	}
	if whatIf.Dropped.Artist != "" || len(whatIf.Ranking) != 0 {
		t.Errorf("Expected empty what-if, got %+v", whatIf)
	}
}
