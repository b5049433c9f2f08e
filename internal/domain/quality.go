package domain

import (
	"strconv"
	"time"
)

// QualityRecord is one flattened (waterbody, category, element, parameter)
// classification row from vann-nett. All fields are optional in the source;
// nil means the upstream document did not report the field.
type QualityRecord struct {
	Category       *string  `json:"category"`
	Element        *string  `json:"element"`
	Parameter      *string  `json:"parameter"`
	Status         *string  `json:"status"`
	EQR            *float64 `json:"eqr"`
	NEQR           *float64 `json:"neqr"`
	Value          *float64 `json:"value"`
	ReferenceValue *float64 `json:"reference_value"`
	Unit           *string  `json:"unit"`
	StatusLimits   *string  `json:"status_limits"`
	YearFrom       *int     `json:"year_from"`
	YearTo         *int     `json:"year_to"`
	SampleCount    *int     `json:"sample_count"`
	Source         *string  `json:"source"`
	DataQuality    *string  `json:"data_quality"`
}

// QualityTable is the flat table of quality records for one water body.
// A nil *QualityTable from a fetch means the upstream document contained no
// parameter data at all ("no data"), which is distinct from an error and from
// a table with zero records.
type QualityTable struct {
	WaterbodyID string          `json:"waterbody_id"`
	Records     []QualityRecord `json:"records"`
	FetchedAt   time.Time       `json:"fetched_at"`
}

// qualityColumns is the canonical column order: waterbody_id first, then the
// fifteen record fields. Callers always see this full schema when any data
// exists, regardless of which fields the upstream document populated.
var qualityColumns = []string{
	"waterbody_id",
	"category",
	"element",
	"parameter",
	"status",
	"eqr",
	"neqr",
	"value",
	"reference_value",
	"unit",
	"status_limits",
	"year_from",
	"year_to",
	"sample_count",
	"source",
	"data_quality",
}

// QualityColumns returns the fixed output schema in canonical order.
func QualityColumns() []string {
	cols := make([]string, len(qualityColumns))
	copy(cols, qualityColumns)
	return cols
}

// Columns returns the table's column names in canonical order.
func (t *QualityTable) Columns() []string {
	return QualityColumns()
}

// Strings renders one record as a row matching QualityColumns, with nil
// fields as empty strings. Used for CSV output.
func (t *QualityTable) Strings(r QualityRecord) []string {
	return []string{
		t.WaterbodyID,
		strOrEmpty(r.Category),
		strOrEmpty(r.Element),
		strOrEmpty(r.Parameter),
		strOrEmpty(r.Status),
		floatOrEmpty(r.EQR),
		floatOrEmpty(r.NEQR),
		floatOrEmpty(r.Value),
		floatOrEmpty(r.ReferenceValue),
		strOrEmpty(r.Unit),
		strOrEmpty(r.StatusLimits),
		intOrEmpty(r.YearFrom),
		intOrEmpty(r.YearTo),
		intOrEmpty(r.SampleCount),
		strOrEmpty(r.Source),
		strOrEmpty(r.DataQuality),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
