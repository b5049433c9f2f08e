package domain

import "strings"

// Column names shared by both model versions. Norwegian "År" (year) matches
// the column header used in the national monitoring reports.
const (
	RegineColumn = "regine"
	YearColumn   = "År"
)

// ModelRow is one (regine, year) row of TEOTIL model output. Values holds
// the accumulated load columns keyed by column name.
type ModelRow struct {
	Regine string             `json:"regine"`
	Year   int                `json:"year"`
	Values map[string]float64 `json:"values"`
}

// ModelTable is TEOTIL model output normalized to a common shape: regine and
// year first, then accumulated columns in encounter order. Columns lists only
// the accumulated column names; every name starts with "accum_".
type ModelTable struct {
	Columns []string   `json:"columns"`
	Rows    []ModelRow `json:"rows"`
}

// IsAccumulated reports whether a column name's first underscore-delimited
// segment is "accum".
func IsAccumulated(column string) bool {
	seg, _, _ := strings.Cut(column, "_")
	return seg == "accum"
}

// HasColumn reports whether the table carries the named accumulated column.
func (t ModelTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ConvertKgToTonnes returns a copy of the table where every column ending in
// "_kg" is replaced by a "_tonnes" column with values divided by 1000. The
// original _kg columns are dropped; other columns pass through unchanged, and
// column order is preserved with each _tonnes column taking its _kg
// predecessor's position.
func (t ModelTable) ConvertKgToTonnes() ModelTable {
	out := ModelTable{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]ModelRow, len(t.Rows)),
	}

	renamed := make(map[string]string, len(t.Columns))
	for i, col := range t.Columns {
		if base, ok := strings.CutSuffix(col, "_kg"); ok {
			out.Columns[i] = base + "_tonnes"
			renamed[col] = out.Columns[i]
		} else {
			out.Columns[i] = col
		}
	}

	for i, row := range t.Rows {
		values := make(map[string]float64, len(row.Values))
		for col, v := range row.Values {
			if tonnesCol, ok := renamed[col]; ok {
				values[tonnesCol] = v / 1000
			} else {
				values[col] = v
			}
		}
		out.Rows[i] = ModelRow{Regine: row.Regine, Year: row.Year, Values: values}
	}
	return out
}
