package cmd

import (
	"fmt"
	"regexp"
	"time"

	"github.com/streamlens/streamlens/internal/analytics"
)

type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

// parseRangeFromArgs turns trailing date arguments into an inclusive range.
// No arguments means full history. One argument covers that whole year, month,
// or day; two arguments run from the start of the first to the end of the
// second.
func parseRangeFromArgs(args []string) (analytics.Range, error) {
	switch len(args) {
	case 0:
		return analytics.Range{}, nil

	case 1:
		date, err := parseSingleDatestring(args[0])
		if err != nil {
			return analytics.Range{}, err
		}
		return analytics.Range{Start: date.Date, End: endOfPeriod(date)}, nil

	case 2:
		start, err := parseSingleDatestring(args[0])
		if err != nil {
			return analytics.Range{}, err
		}
		end, err := parseSingleDatestring(args[1])
		if err != nil {
			return analytics.Range{}, err
		}
		r := analytics.Range{Start: start.Date, End: endOfPeriod(end)}
		if err := r.Validate(); err != nil {
			return analytics.Range{}, err
		}
		return r, nil

	default:
		return analytics.Range{}, fmt.Errorf("expected at most two date arguments")
	}
}

// endOfPeriod gives the last day covered by a parsed date: Dec 31 for a year,
// the month's last day for a month, the day itself otherwise.
func endOfPeriod(date ParsedDate) time.Time {
	switch {
	case date.Year:
		return date.Date.AddDate(1, 0, -1)
	case date.Month:
		return date.Date.AddDate(0, 1, -1)
	default:
		return date.Date
	}
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	matched, err := regexp.Match(`^\d{4}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as year: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as year: %w", err)
			return
		}
		date.Year = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as month: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006-01", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as month: %w", err)
			return
		}
		date.Month = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as day: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006-01-02", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as day: %w", err)
			return
		}
		date.Day = true
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
