package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/fjordlab/vannrapport/internal/observability"
	"github.com/fjordlab/vannrapport/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockLoader struct {
	table domain.ModelTable
	err   error
	calls int
}

func (m *mockLoader) Load(_ context.Context) (domain.ModelTable, error) {
	m.calls++
	if m.err != nil {
		return domain.ModelTable{}, m.err
	}
	return m.table, nil
}

type mockPublisher struct {
	published []domain.AggregatedTable
	err       error
}

func (m *mockPublisher) PublishRows(_ context.Context, table domain.AggregatedTable) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, table)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var teotil2PhosphorusColumns = []string{
	"accum_aqu_tot-p_tonnes",
	"accum_agri_diff_tot-p_tonnes",
	"accum_agri_pt_tot-p_tonnes",
	"accum_ren_tot-p_tonnes",
	"accum_spr_tot-p_tonnes",
	"accum_ind_tot-p_tonnes",
	"accum_urban_tot-p_tonnes",
	"accum_nat_diff_tot-p_tonnes",
}

func testTable() domain.ModelTable {
	values := make(map[string]float64, len(teotil2PhosphorusColumns))
	for _, c := range teotil2PhosphorusColumns {
		values[c] = 0
	}
	values["accum_aqu_tot-p_tonnes"] = 2.5
	return domain.ModelTable{
		Columns: teotil2PhosphorusColumns,
		Rows:    []domain.ModelRow{{Regine: "002.A51", Year: 2020, Values: values}},
	}
}

func TestExporterRun(t *testing.T) {
	loader := &mockLoader{table: testTable()}
	publisher := &mockPublisher{}

	e := pipeline.New(loader, publisher, domain.PollutantPhosphorus, domain.ModelTeotil2,
		discardLogger(), observability.NewMetricsForTesting())

	require.Error(t, e.CheckReadiness(context.Background()), "not ready before first run")

	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, 1, loader.calls)
	require.Len(t, publisher.published, 1)

	table := publisher.published[0]
	assert.Equal(t, domain.PollutantPhosphorus, table.Pollutant)
	assert.Equal(t, domain.ModelTeotil2, table.Version)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 2.5, table.Rows[0].Loads["Akvakultur"])

	assert.NoError(t, e.CheckReadiness(context.Background()), "ready after successful run")
}

func TestExporterRun_LoadError(t *testing.T) {
	loader := &mockLoader{err: errors.New("boom")}
	publisher := &mockPublisher{}

	e := pipeline.New(loader, publisher, domain.PollutantNitrogen, domain.ModelTeotil2,
		discardLogger(), observability.NewMetricsForTesting())

	err := e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load model results")
	assert.Empty(t, publisher.published)
	assert.Error(t, e.CheckReadiness(context.Background()))
}

func TestExporterRun_AggregateError(t *testing.T) {
	// Table missing every mapped column.
	loader := &mockLoader{table: domain.ModelTable{Columns: []string{"accum_other_tonnes"}}}
	publisher := &mockPublisher{}

	e := pipeline.New(loader, publisher, domain.PollutantNitrogen, domain.ModelTeotil2,
		discardLogger(), observability.NewMetricsForTesting())

	err := e.Run(context.Background())
	require.Error(t, err)

	var schemaErr *domain.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.Empty(t, publisher.published)
}

func TestExporterRun_PublishError(t *testing.T) {
	loader := &mockLoader{table: testTable()}
	publisher := &mockPublisher{err: errors.New("broker down")}

	e := pipeline.New(loader, publisher, domain.PollutantPhosphorus, domain.ModelTeotil2,
		discardLogger(), observability.NewMetricsForTesting())

	err := e.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish aggregated rows")
	assert.Error(t, e.CheckReadiness(context.Background()))
}

func TestResultLoaderFunc(t *testing.T) {
	called := false
	f := pipeline.ResultLoaderFunc(func(_ context.Context) (domain.ModelTable, error) {
		called = true
		return domain.ModelTable{}, nil
	})

	_, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, called)
}
