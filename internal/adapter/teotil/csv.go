// Package teotil loads TEOTIL nutrient-loading model results: TEOTIL2 from
// the published per-year CSVs, TEOTIL3 from local result files. Both loaders
// normalize their output to a domain.ModelTable (regine, year, accumulated
// columns).
package teotil

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"encoding/csv"

	"github.com/fjordlab/vannrapport/internal/domain"
)

// csvTable is a raw parsed CSV: header plus data rows.
type csvTable struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func readCSV(r io.Reader) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv has no header row")
	}

	t := &csvTable{
		header: records[0],
		index:  make(map[string]int, len(records[0])),
		rows:   records[1:],
	}
	for i, name := range t.header {
		t.index[name] = i
	}
	return t, nil
}

// column returns the index of a named column.
func (t *csvTable) column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// accumColumns returns the accumulated column names in header order.
func (t *csvTable) accumColumns() []string {
	var cols []string
	for _, name := range t.header {
		if domain.IsAccumulated(name) {
			cols = append(cols, name)
		}
	}
	return cols
}

// parseCell parses a numeric CSV cell. Empty cells read as zero, matching
// how the published result files encode "no load".
func parseCell(column, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not numeric", column, raw)
	}
	return v, nil
}

// mergeColumns unions two ordered column lists, preserving encounter order.
func mergeColumns(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, c := range dst {
		seen[c] = true
	}
	for _, c := range src {
		if !seen[c] {
			dst = append(dst, c)
			seen[c] = true
		}
	}
	return dst
}
