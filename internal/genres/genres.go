// Package genres loads the optional artist→genre side table: a CSV with
// columns artistName and genres, the latter a pipe-delimited list. A missing
// file is legal and simply disables genre rollups.
package genres

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

type Table map[string][]string

// Load reads the mapping. An empty path or a missing file returns (nil, nil).
func Load(path string) (Table, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening genre table: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("genre table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading genre table header: %w", err)
	}

	artistCol, genresCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "artistName":
			artistCol = i
		case "genres":
			genresCol = i
		}
	}
	if artistCol < 0 || genresCol < 0 {
		return nil, fmt.Errorf("genre table needs artistName and genres columns, got %v", header)
	}

	table := make(Table)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading genre table: %w", err)
		}
		artist := record[artistCol]
		var list []string
		for _, g := range strings.Split(record[genresCol], "|") {
			g = strings.TrimSpace(g)
			if g != "" {
				list = append(list, g)
			}
		}
		if len(list) > 0 {
			table[artist] = list
		}
	}
	return table, nil
}
