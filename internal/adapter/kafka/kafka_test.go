package kafka

import (
	"testing"
	"time"

	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	fixed := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	defer domain.SetClock(nil)

	table := domain.AggregatedTable{
		Pollutant: domain.PollutantNitrogen,
		Version:   domain.ModelTeotil2,
	}
	row := domain.AggregatedRow{
		Regine: "002.A51",
		Year:   2020,
		Loads: map[string]float64{
			"Akvakultur": 5,
			"Jordbruk":   0,
			"Avløp":      0,
			"Industri":   0,
			"Bebygd":     0,
			"Bakgrunn":   1.25,
		},
	}

	msg, err := serializeToMessage(table, row)
	require.NoError(t, err)

	assert.Equal(t, []byte("002.A51|2020"), msg.Key)
	assert.Contains(t, string(msg.Value), `"regine":"002.A51"`)
	assert.Contains(t, string(msg.Value), `"year":2020`)
	assert.Contains(t, string(msg.Value), `"Akvakultur":5`)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "pollutant", msg.Headers[0].Key)
	assert.Equal(t, []byte("n"), msg.Headers[0].Value)
	assert.Equal(t, "model_version", msg.Headers[1].Key)
	assert.Equal(t, []byte("teotil2"), msg.Headers[1].Value)
	assert.Equal(t, "exported_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(fixed.Format(time.RFC3339)), msg.Headers[2].Value)
}
