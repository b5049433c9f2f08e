package teotil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/fjordlab/vannrapport/internal/observability"
)

// DefaultV2BaseURL is the published location of the TEOTIL2 annual result files.
const DefaultV2BaseURL = "https://raw.githubusercontent.com/NIVANorge/teotil2/main/data/norway_annual_output_data"

// V2Loader fetches TEOTIL2 results, published as one CSV file per year.
type V2Loader struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewV2Loader creates a TEOTIL2 result loader. An empty baseURL selects the
// published result location.
func NewV2Loader(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *V2Loader {
	if baseURL == "" {
		baseURL = DefaultV2BaseURL
	}
	return &V2Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// LoadResults fetches each year in [startYear, endYear] and concatenates the
// rows matching the regine catchment identifier, in year order. A year with
// no matching rows logs a warning and contributes nothing; a fetch or parse
// failure for any year aborts the whole load.
func (l *V2Loader) LoadResults(ctx context.Context, startYear, endYear int, regine string) (domain.ModelTable, error) {
	var out domain.ModelTable
	for year := startYear; year <= endYear; year++ {
		yearTable, err := l.loadYear(ctx, year, regine)
		if err != nil {
			return domain.ModelTable{}, fmt.Errorf("load teotil2 results for %d: %w", year, err)
		}
		if len(yearTable.Rows) == 0 {
			l.logger.Warn("no rows for catchment",
				"model", "teotil2",
				"regine", regine,
				"year", year,
			)
			l.metrics.EmptyYearWarnings.WithLabelValues("teotil2").Inc()
		}
		out.Columns = mergeColumns(out.Columns, yearTable.Columns)
		out.Rows = append(out.Rows, yearTable.Rows...)
	}

	l.metrics.ModelRowsLoaded.WithLabelValues("teotil2").Add(float64(len(out.Rows)))
	return out, nil
}

func (l *V2Loader) loadYear(ctx context.Context, year int, regine string) (domain.ModelTable, error) {
	u := fmt.Sprintf("%s/teotil2_results_%d.csv", l.baseURL, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.ModelTable{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return domain.ModelTable{}, fmt.Errorf("fetch results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ModelTable{}, &domain.UpstreamError{Status: resp.StatusCode, URL: u}
	}

	raw, err := readCSV(resp.Body)
	if err != nil {
		return domain.ModelTable{}, err
	}

	regineIdx, ok := raw.column(domain.RegineColumn)
	if !ok {
		return domain.ModelTable{}, &domain.SchemaError{Missing: []string{domain.RegineColumn}}
	}

	table := domain.ModelTable{Columns: raw.accumColumns()}
	for _, row := range raw.rows {
		if row[regineIdx] != regine {
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
	return table, nil
}
