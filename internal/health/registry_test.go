package health

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	def, ok := reg.Lookup("heart_rate")
	require.True(t, ok)
	assert.Equal(t, "com.samsung.shealth.tracker.heart_rate.*.csv", def.SourcePattern)
	assert.Equal(t, "heart_rate.csv", def.OutputName)

	_, ok = reg.Lookup("unknown_metric")
	assert.False(t, ok)
}

func TestDefaultRegistry_DefinitionsAreWellFormed(t *testing.T) {
	for _, def := range DefaultRegistry().Definitions() {
		assert.NotEmpty(t, def.ID)
		assert.True(t, strings.HasSuffix(def.SourcePattern, ".csv"), "metric %s", def.ID)
		assert.True(t, strings.HasSuffix(def.OutputName, ".csv"), "metric %s", def.ID)
		assert.NotContains(t, def.OutputName, "*", "metric %s", def.ID)
	}
}

func TestNewRegistry_PanicsOnDuplicateID(t *testing.T) {
	defs := []MetricDefinition{
		{ID: "weight"},
		{ID: "weight"},
	}
	assert.Panics(t, func() { NewRegistry(defs) })
}
