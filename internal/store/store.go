package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/avast/retry-go"
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnavailable means the published store could not be opened: either the
// database file does not exist, or another process held it locked for longer
// than the bounded wait.
var ErrUnavailable = errors.New("store unavailable")

// Listen is one play event from the streaming history. EndTime is kept as the
// export's original string so that imports round-trip exactly; all bucketing
// happens in SQL via date functions.
type Listen struct {
	EndTime    string
	ArtistName string
	TrackName  string
	MsPlayed   int64
}

// Schema is the listens table: the four export fields, no keys, duplicates
// legal. The dataset is an append-only log rebuilt wholesale on import.
const Schema = `
CREATE TABLE listens (
  endTime    TEXT    NOT NULL,
  artistName TEXT    NOT NULL,
  trackName  TEXT    NOT NULL,
  msPlayed   INTEGER NOT NULL
);
`

const (
	openAttempts = 5
	openDelay    = 200 * time.Millisecond
)

// OpenRead opens the published store read-only. The connection sees a
// consistent snapshot: if an import swaps the database file underneath it, the
// open handle keeps reading the old bytes until it is reopened.
//
// A locked database is retried for a bounded interval; a missing file fails
// immediately. Both surface as ErrUnavailable.
func OpenRead(dbPath string) (*sql.DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w: %s doesn't exist, run 'import' first", ErrUnavailable, dbPath)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=3000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = retry.Do(
		func() error { return db.Ping() },
		retry.Attempts(openAttempts),
		retry.Delay(openDelay),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return db, nil
}
