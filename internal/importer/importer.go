package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/streamlens/streamlens/internal/store"
)

// ErrEmptyInput means no export files matched the pattern, or every matching
// file contained zero records. The published store is left untouched.
var ErrEmptyInput = errors.New("no streaming history records found")

// MalformedRecordError reports a record that is missing or has an invalid
// required field. The whole batch is rejected: the import is an all-or-nothing
// dataset replace, and silently dropping rows would make the published dataset
// depend on which export files happened to be damaged.
type MalformedRecordError struct {
	File  string
	Index int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %d in %s: bad field %q", e.Index, e.File, e.Field)
}

// DefaultPattern matches the files of a Spotify "StreamingHistory" export.
const DefaultPattern = "StreamingHistory_music_*.json"

// Config locates the export files and the store. It is passed in explicitly;
// the importer holds no ambient state.
type Config struct {
	// DataDir holds the export files.
	DataDir string

	// Pattern is the export file glob, DefaultPattern if empty.
	Pattern string

	// DBPath is the published store location.
	DBPath string
}

type Importer struct {
	config Config
	logger *log.Logger
}

func New(config Config) *Importer {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	return &Importer{
		config: config,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "import"}),
	}
}

// Import reads every matching export file, builds a brand-new store in an
// isolated staging location, and atomically swaps it in as the published
// store. On any failure the previously published store is untouched; staging
// resources are cleaned up on both paths. Returns the number of records
// imported.
func (im *Importer) Import() (int, error) {
	files, err := im.discover()
	if err != nil {
		return 0, err
	}
	im.logger.Info("found export files", "count", len(files))

	listens, err := im.readFiles(files)
	if err != nil {
		return 0, err
	}
	if len(listens) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrEmptyInput, im.config.DataDir)
	}
	im.logger.Info("parsed records", "count", len(listens))

	staging, err := store.NewStaging(im.config.DBPath)
	if err != nil {
		return 0, fmt.Errorf("staging store: %w", err)
	}
	defer staging.Discard()

	if err := staging.InsertListens(listens); err != nil {
		return 0, fmt.Errorf("populating staged store: %w", err)
	}

	if err := staging.Publish(im.config.DBPath); err != nil {
		return 0, err
	}
	im.logger.Info("published store", "path", im.config.DBPath, "records", len(listens))

	return len(listens), nil
}

// discover lists matching export files in a stable order.
func (im *Importer) discover() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(im.config.DataDir, im.config.Pattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", im.config.Pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyInput, im.config.DataDir)
	}
	sort.Strings(matches)
	return matches, nil
}

func (im *Importer) readFiles(files []string) ([]store.Listen, error) {
	var listens []store.Listen
	for _, file := range files {
		fromFile, err := readFile(file)
		if err != nil {
			return nil, err
		}
		listens = append(listens, fromFile...)
	}
	return listens, nil
}

// The export timestamp format, e.g. "2021-03-14 09:26". Older exports use
// RFC3339.
var endTimeLayouts = []string{"2006-01-02 15:04", time.RFC3339}

func readFile(path string) ([]store.Listen, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("parsing %s: expected a JSON array of records", path)
	}

	var listens []store.Listen
	for i, record := range parsed.Array() {
		listen, err := parseRecord(path, i, record)
		if err != nil {
			return nil, err
		}
		listens = append(listens, listen)
	}
	return listens, nil
}

func parseRecord(file string, index int, record gjson.Result) (store.Listen, error) {
	for _, field := range []string{"endTime", "artistName", "trackName", "msPlayed"} {
		if !record.Get(field).Exists() {
			return store.Listen{}, &MalformedRecordError{File: file, Index: index, Field: field}
		}
	}

	endTime := record.Get("endTime").String()
	if !validEndTime(endTime) {
		return store.Listen{}, &MalformedRecordError{File: file, Index: index, Field: "endTime"}
	}

	msPlayed := record.Get("msPlayed")
	if msPlayed.Type != gjson.Number || msPlayed.Int() < 0 {
		return store.Listen{}, &MalformedRecordError{File: file, Index: index, Field: "msPlayed"}
	}

	return store.Listen{
		EndTime:    endTime,
		ArtistName: record.Get("artistName").String(),
		TrackName:  record.Get("trackName").String(),
		MsPlayed:   msPlayed.Int(),
	}, nil
}

func validEndTime(value string) bool {
	for _, layout := range endTimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
