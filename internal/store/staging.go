package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Staging is a brand-new store being built off to the side. It lives in a
// temporary directory next to the target database so that Publish is a rename
// within one filesystem.
type Staging struct {
	dir  string
	path string
	db   *sql.DB
}

// NewStaging creates an empty staged store for the given target path.
func NewStaging(targetPath string) (*Staging, error) {
	parent := filepath.Dir(targetPath)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dir, err := os.MkdirTemp(parent, "staging-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(targetPath))
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("opening staging database: %w", err)
	}

	// DELETE journal mode keeps the staged file self-contained, so the
	// publish rename moves everything there is.
	if _, err := db.Exec("PRAGMA journal_mode=DELETE; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		os.RemoveAll(dir)
		return nil, fmt.Errorf("configuring staging database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		os.RemoveAll(dir)
		return nil, fmt.Errorf("creating listens table: %w", err)
	}

	return &Staging{dir: dir, path: path, db: db}, nil
}

// InsertListens writes the full dataset in a single transaction. Either every
// record commits or none do.
func (s *Staging) InsertListens(listens []Listen) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO listens (endTime, artistName, trackName, msPlayed) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range listens {
		if _, err := stmt.Exec(l.EndTime, l.ArtistName, l.TrackName, l.MsPlayed); err != nil {
			return fmt.Errorf("inserting listen: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Publish atomically replaces the target database with the staged one. Stale
// -wal/-shm sidecars belong to the old database's identity and are removed
// first; only "already absent" is tolerated there. The rename itself is atomic
// at the filesystem level, so a concurrent reader either still sees the old
// file through its open handle or sees the new one fully formed.
func (s *Staging) Publish(targetPath string) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing staging database: %w", err)
	}
	s.db = nil

	for _, suffix := range []string{"-wal", "-shm"} {
		err := os.Remove(targetPath + suffix)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale sidecar %s: %w", targetPath+suffix, err)
		}
	}

	if err := os.Rename(s.path, targetPath); err != nil {
		return fmt.Errorf("publishing database: %w", err)
	}
	return nil
}

// Discard releases staging resources. Safe to call after Publish and on every
// failure path.
func (s *Staging) Discard() error {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	if s.dir == "" {
		return nil
	}
	err := os.RemoveAll(s.dir)
	s.dir = ""
	if err != nil {
		return fmt.Errorf("removing staging directory: %w", err)
	}
	return nil
}
