package teotil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/fjordlab/vannrapport/internal/observability"
)

// V3Loader reads TEOTIL3 results from local CSV files. Each file covers one
// (agricultural loss model, reference data year, year range) combination and
// reports loads in kilograms, which the loader converts to tonnes.
type V3Loader struct {
	dataDir string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewV3Loader creates a TEOTIL3 result loader reading from dataDir.
func NewV3Loader(dataDir string, logger *slog.Logger, metrics *observability.Metrics) *V3Loader {
	return &V3Loader{
		dataDir: dataDir,
		logger:  logger,
		metrics: metrics,
	}
}

// resultPath builds the result file path for one parameter combination.
func (l *V3Loader) resultPath(startYear, endYear int, agriLossModel string, referenceDataYear int) string {
	name := fmt.Sprintf("teotil3_results_%s_%d_%d_%d.csv", agriLossModel, referenceDataYear, startYear, endYear)
	return filepath.Join(l.dataDir, name)
}

// LoadResults reads the result file for the given parameters and returns the
// rows matching regine with year in [startYear, endYear], accumulated columns
// converted from kilograms to tonnes. A missing file fails with
// domain.ErrNotFound; no matching rows logs a warning and returns an empty
// table.
func (l *V3Loader) LoadResults(startYear, endYear int, regine, agriLossModel string, referenceDataYear int) (domain.ModelTable, error) {
	path := l.resultPath(startYear, endYear, agriLossModel, referenceDataYear)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ModelTable{}, fmt.Errorf("%w: teotil3 result file %s", domain.ErrNotFound, path)
		}
		return domain.ModelTable{}, fmt.Errorf("open teotil3 results: %w", err)
	}
	defer f.Close()

	raw, err := readCSV(f)
	if err != nil {
		return domain.ModelTable{}, fmt.Errorf("read %s: %w", path, err)
	}

	regineIdx, ok := raw.column(domain.RegineColumn)
	if !ok {
		return domain.ModelTable{}, &domain.SchemaError{Missing: []string{domain.RegineColumn}}
	}
	yearIdx, ok := raw.column("year")
	if !ok {
		return domain.ModelTable{}, &domain.SchemaError{Missing: []string{"year"}}
	}

	table := domain.ModelTable{Columns: raw.accumColumns()}
	for _, row := range raw.rows {
		if row[regineIdx] != regine {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[yearIdx]))
		if err != nil {
			return domain.ModelTable{}, fmt.Errorf("column year: %q is not an integer", row[yearIdx])
		}
		if year < startYear || year > endYear {
			continue
		}

		values := make(map[string]float64, len(table.Columns))
		for _, col := range table.Columns {
			v, err := parseCell(col, row[raw.index[col]])
			if err != nil {
				return domain.ModelTable{}, err
			}
			values[col] = v
		}
		table.Rows = append(table.Rows, domain.ModelRow{Regine: regine, Year: year, Values: values})
	}

	if len(table.Rows) == 0 {
		l.logger.Warn("no rows for catchment",
			"model", "teotil3",
			"regine", regine,
			"start_year", startYear,
			"end_year", endYear,
		)
		l.metrics.EmptyYearWarnings.WithLabelValues("teotil3").Inc()
	}

	l.metrics.ModelRowsLoaded.WithLabelValues("teotil3").Add(float64(len(table.Rows)))
	return table.ConvertKgToTonnes(), nil
}
