package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSV layout: Timestamp,Open,High,Low,Close,Volume. Close is used as the
// price. Timestamps are accepted as Unix seconds, Unix milliseconds, or
// RFC 3339. A header row is detected and skipped.
const csvColumns = 6

// unix timestamps at or above this are treated as milliseconds
// (1e12 seconds would be the year 33658).
const msThreshold = 1_000_000_000_000

// LoadCSV reads an OHLCV CSV file and returns its close prices as a series.
func LoadCSV(path string) ([]PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// ReadCSV parses OHLCV rows from r. Rows must have at least six columns.
func ReadCSV(r io.Reader) ([]PricePoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var points []PricePoint
	line := 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return points, nil
		}
		if err != nil {
			return nil, err
		}
		line++

		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) < csvColumns {
			return nil, fmt.Errorf("row %d: need %d columns (Timestamp,Open,High,Low,Close,Volume), got %d", line, csvColumns, len(row))
		}

		t, err := parseTimestamp(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		closePx, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad close %q: %w", line, row[4], err)
		}

		points = append(points, PricePoint{Time: t, Price: closePx})
	}
}

// WriteCSV writes points as OHLCV rows (open=high=low=close, zero volume)
// with Unix-second timestamps, so generated files round-trip through ReadCSV.
func WriteCSV(w io.Writer, points []PricePoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Timestamp", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return err
	}
	for _, p := range points {
		px := strconv.FormatFloat(p.Price, 'f', -1, 64)
		row := []string{strconv.FormatInt(p.Time.Unix(), 10), px, px, px, px, "0"}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "timestamp" || first == "time" || first == "date"
}

func parseTimestamp(s string) (time.Time, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n >= msThreshold {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q (want unix sec/ms or RFC 3339)", s)
}
