package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"weightloss/internal/domain/logbook"
)

var sample = []logbook.Log{
	{ID: "a", UID: "u1", Date: "2024-05-01", Meal: "Oats", Nutrition: &logbook.Nutrition{Total: logbook.Totals{Calories: 300, Protein: 10}}},
	{ID: "b", UID: "u1", Date: "2024-05-01", Exercise: "Run"},
}

func TestBar(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		filled int
	}{
		{"empty", 0, 0},
		{"half", 750, 12},
		{"full", 1500, barWidth},
		{"overflow clamps", 4000, barWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := logbook.Progress{Value: tt.value, Target: logbook.Range{Min: 1000, Max: 1500}, Status: logbook.StatusWithin}
			bar := Bar(p)

			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, barWidth-tt.filled, strings.Count(bar, "░"))
		})
	}
}

func TestDay(t *testing.T) {
	out := Day(logbook.Summarize(sample, "2024-05-01"), logbook.DefaultTargets)

	assert.Contains(t, out, "2024-05-01")
	assert.Contains(t, out, "calories")
	assert.Contains(t, out, "below")
}

func TestWeek(t *testing.T) {
	w, err := logbook.Week(sample, "2024-05-03")
	require.NoError(t, err)

	out := Week(w, logbook.DefaultTargets)

	assert.Contains(t, out, "2024-04-27")
	assert.Contains(t, out, "05-01")
	assert.Contains(t, out, "300 kcal")
}

func TestExport(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, sample, FormatJSON))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Oats", got[0]["meal"])
		assert.NotContains(t, got[0], "uid")
		assert.NotContains(t, got[1], "totals")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, sample, FormatYAML))

		var got []exportedLog
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, 300.0, got[0].Totals.Calories)
		assert.Equal(t, "Run", got[1].Exercise)
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, Export(&bytes.Buffer{}, sample, "csv"))
	})
}
