// Package domain models Norwegian water-quality reporting data: vann-nett
// classification records, Water Framework Directive (WFD) status classes, and
// TEOTIL nutrient-loading model results.
//
// # Vann-nett quality records
//
// The vann-nett registry (https://vann-nett.no) exposes per-waterbody quality
// classifications as a nested JSON document: a list of category objects, each
// holding quality-element objects, each holding parameter objects. One
// QualityRecord corresponds to one leaf parameter object; flattening walks
// category → element → parameter and emits one record per leaf.
//
// Quality elements are requested by one of three selectors:
//
//	ecological → "ecological"   ecological status parameters
//	rbsp       → "RBSP"         river basin specific pollutants
//	swchemical → "swChemical"   surface water chemical status
//
// Every field except the waterbody ID is optional in the source; absent
// fields stay nil so downstream consumers can tell "unreported" from zero.
//
// # WFD classification
//
// A class boundary set is four ascending thresholds serialized as a
// semicolon-separated string, e.g. "475.0;650.0;1075.0;1775.0". The four
// thresholds define five half-open intervals mapped to the WFD classes
// High, Good, Moderate, Poor and Bad. Ascending value means descending
// quality: values below the first boundary classify as High.
//
// # TEOTIL model results
//
// TEOTIL computes riverine nutrient loads per regine (Norwegian catchment
// identifier) and year. "Accumulated" columns carry loads summed over the
// upstream catchment network; their names encode a source sector and a
// pollutant, e.g.
//
//	accum_agri_diff_tot-n_tonnes   (TEOTIL2: diffuse agricultural nitrogen)
//	accum_aquaculture_tot-p_kg     (TEOTIL3: aquaculture phosphorus, kilograms)
//
// TEOTIL2 publishes loads in tonnes; TEOTIL3 publishes kilograms, which the
// loader converts to tonnes (column suffix _kg → _tonnes, value ÷ 1000) so
// both model versions share one output shape.
//
// Aggregation folds the per-sector columns into six report categories used by
// the national river monitoring reports: Akvakultur (aquaculture), Jordbruk
// (agriculture), Avløp (wastewater), Industri (industry), Bebygd (urban areas)
// and Bakgrunn (natural background). The category → source-column mapping is
// fixed per (pollutant, model version) pair; see [Aggregate].
package domain
