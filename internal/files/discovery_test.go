package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByPattern(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"com.samsung.shealth.tracker.heart_rate.202402.csv",
		"com.samsung.shealth.tracker.heart_rate.202401.csv",
		"com.samsung.health.weight.202401.csv",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	d := NewDiscovery(dir)
	found, err := d.FindByPattern("com.samsung.shealth.tracker.heart_rate.*.csv")
	require.NoError(t, err)

	require.Len(t, found, 2)
	// Sorted by name so discovery order is stable across runs.
	assert.Equal(t, "com.samsung.shealth.tracker.heart_rate.202401.csv", found[0].Name)
	assert.Equal(t, "com.samsung.shealth.tracker.heart_rate.202402.csv", found[1].Name)
	assert.Equal(t, filepath.Join(dir, found[0].Name), found[0].Path)
}

func TestFindByPattern_NoMatchesIsNotAnError(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	found, err := d.FindByPattern("com.samsung.health.ecg.*.csv")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindByPattern_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "com.samsung.health.weight.backup.csv"), 0755))

	d := NewDiscovery(dir)
	found, err := d.FindByPattern("com.samsung.health.weight.*.csv")
	require.NoError(t, err)
	assert.Empty(t, found)
}
