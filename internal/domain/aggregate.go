package domain

import "fmt"

// Pollutant selects which nutrient's columns to aggregate.
type Pollutant string

const (
	PollutantNitrogen   Pollutant = "n"
	PollutantPhosphorus Pollutant = "p"
)

// ModelVersion selects which TEOTIL column vocabulary the input table uses.
type ModelVersion string

const (
	ModelTeotil2 ModelVersion = "teotil2"
	ModelTeotil3 ModelVersion = "teotil3"
)

// ReportCategories lists the six report categories in output column order.
var ReportCategories = []string{
	"Akvakultur",
	"Jordbruk",
	"Avløp",
	"Industri",
	"Bebygd",
	"Bakgrunn",
}

type mappingKey struct {
	pollutant Pollutant
	version   ModelVersion
}

// aggregationMappings is static configuration, written out in full rather
// than generated, so the exact source columns behind each report category can
// be read and reviewed directly.
var aggregationMappings = map[mappingKey]map[string][]string{
	{PollutantNitrogen, ModelTeotil2}: {
		"Akvakultur": {"accum_aqu_tot-n_tonnes"},
		"Jordbruk":   {"accum_agri_diff_tot-n_tonnes", "accum_agri_pt_tot-n_tonnes"},
		"Avløp":      {"accum_ren_tot-n_tonnes", "accum_spr_tot-n_tonnes"},
		"Industri":   {"accum_ind_tot-n_tonnes"},
		"Bebygd":     {"accum_urban_tot-n_tonnes"},
		"Bakgrunn":   {"accum_nat_diff_tot-n_tonnes"},
	},
	{PollutantPhosphorus, ModelTeotil2}: {
		"Akvakultur": {"accum_aqu_tot-p_tonnes"},
		"Jordbruk":   {"accum_agri_diff_tot-p_tonnes", "accum_agri_pt_tot-p_tonnes"},
		"Avløp":      {"accum_ren_tot-p_tonnes", "accum_spr_tot-p_tonnes"},
		"Industri":   {"accum_ind_tot-p_tonnes"},
		"Bebygd":     {"accum_urban_tot-p_tonnes"},
		"Bakgrunn":   {"accum_nat_diff_tot-p_tonnes"},
	},
	{PollutantNitrogen, ModelTeotil3}: {
		"Akvakultur": {"accum_aquaculture_tot-n_tonnes"},
		"Jordbruk":   {"accum_agriculture_tot-n_tonnes"},
		"Avløp":      {"accum_wastewater_tot-n_tonnes", "accum_spredt_tot-n_tonnes"},
		"Industri":   {"accum_industry_tot-n_tonnes"},
		"Bebygd":     {"accum_urban_tot-n_tonnes"},
		"Bakgrunn":   {"accum_natural_tot-n_tonnes"},
	},
	{PollutantPhosphorus, ModelTeotil3}: {
		"Akvakultur": {"accum_aquaculture_tot-p_tonnes"},
		"Jordbruk":   {"accum_agriculture_tot-p_tonnes"},
		"Avløp":      {"accum_wastewater_tot-p_tonnes", "accum_spredt_tot-p_tonnes"},
		"Industri":   {"accum_industry_tot-p_tonnes"},
		"Bebygd":     {"accum_urban_tot-p_tonnes"},
		"Bakgrunn":   {"accum_natural_tot-p_tonnes"},
	},
}

// AggregatedRow is one (regine, year) row of the aggregated report table.
// Loads is keyed by report category.
type AggregatedRow struct {
	Regine string             `json:"regine"`
	Year   int                `json:"year"`
	Loads  map[string]float64 `json:"loads"`
}

// AggregatedTable is a model result table folded into the six report
// categories for one pollutant.
type AggregatedTable struct {
	Pollutant Pollutant      `json:"pollutant"`
	Version   ModelVersion   `json:"model_version"`
	Rows      []AggregatedRow `json:"rows"`
}

// Columns returns the fixed output column order: regine, year, then the six
// report categories.
func (t AggregatedTable) Columns() []string {
	return append([]string{RegineColumn, YearColumn}, ReportCategories...)
}

// Aggregate sums the mapped source columns of each row into the six report
// categories for the given pollutant and model version. The input table is
// not modified. It returns ErrInvalidArgument for an unknown pollutant or
// version, and a *SchemaError naming every mapped column absent from the
// table.
func Aggregate(table ModelTable, pollutant Pollutant, version ModelVersion) (AggregatedTable, error) {
	mapping, ok := aggregationMappings[mappingKey{pollutant, version}]
	if !ok {
		return AggregatedTable{}, fmt.Errorf("%w: no aggregation mapping for pollutant %q, model version %q",
			ErrInvalidArgument, pollutant, version)
	}

	var missing []string
	for _, category := range ReportCategories {
		for _, col := range mapping[category] {
			if !table.HasColumn(col) {
				missing = append(missing, col)
			}
		}
	}
	if len(missing) > 0 {
		return AggregatedTable{}, &SchemaError{Missing: missing}
	}

	out := AggregatedTable{
		Pollutant: pollutant,
		Version:   version,
		Rows:      make([]AggregatedRow, len(table.Rows)),
	}
	for i, row := range table.Rows {
		loads := make(map[string]float64, len(ReportCategories))
		for _, category := range ReportCategories {
			var sum float64
			for _, col := range mapping[category] {
				sum += row.Values[col]
			}
			loads[category] = sum
		}
		out.Rows[i] = AggregatedRow{Regine: row.Regine, Year: row.Year, Loads: loads}
	}
	return out, nil
}
