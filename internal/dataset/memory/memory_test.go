package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasika/internal/core"
)

func TestNewSample(t *testing.T) {
	s, err := NewSample()
	require.NoError(t, err)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Apiaries(), 3)
	assert.Len(t, ds.Hives(), 5)
	assert.Len(t, ds.Harvests(), 5)
	assert.Len(t, ds.Tasks(), 5)

	totals := core.ComputeFleetTotals(ds.Apiaries())
	assert.Equal(t, core.FleetTotals{TotalHoney: 970, TotalHives: 35, ActiveCount: 2}, totals)

	hive := ds.Hives()[0]
	assert.Equal(t, "П1-01", hive.Number)
	assert.Equal(t, "2024-10-28", hive.LastInspection.ISO())
	assert.Equal(t, core.Spring, ds.Harvests()[0].Season)
}

func TestNewFromFileFallsBackToSample(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		s, err := NewFromFile(path)
		require.NoError(t, err, "path=%q", path)
		ds, _ := s.Load(context.Background())
		assert.Len(t, ds.Apiaries(), 3)
	}
}

func TestNewFromFileCustomDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apiaries.yaml")
	content := `
apiaries:
  - {id: 7, name: "Test", location: "Somewhere", hive_count: 2, total_honey: 10, avg_per_hive: 5, status: dormant}
hives:
  - {id: 1, apiary_id: 99, number: "X-01", queen_age: 1, strength: 40, last_inspection: "2024-05-01", honey_collected: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := NewFromFile(path)
	require.NoError(t, err)
	ds, _ := s.Load(context.Background())
	require.Len(t, ds.Apiaries(), 1)
	assert.Equal(t, core.StatusDormant, ds.Apiaries()[0].Status)
	assert.Empty(t, ds.Harvests())
}

func TestNewFromFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown status": "apiaries:\n  - {id: 1, name: A, status: retired}\n",
		"unknown field":  "apiaries:\n  - {id: 1, name: A, status: active, colour: red}\n",
		"bad date":       "hives:\n  - {id: 1, apiary_id: 1, last_inspection: \"28.10.2024\"}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := NewFromFile(path)
			assert.Error(t, err)
		})
	}
}

func TestSampleYAMLIsACopy(t *testing.T) {
	b := SampleYAML()
	require.NotEmpty(t, b)
	b[0] = 'X'
	assert.NotEqual(t, byte('X'), SampleYAML()[0])
}

func TestNewFromFileRejectsNonFiniteAmounts(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"nan total":    "apiaries:\n  - {id: 1, name: A, total_honey: .nan, status: active}\n",
		"inf harvest":  "harvests:\n  - {hive_id: 1, amount: .inf, season: spring}\n",
		"neg inf hive": "hives:\n  - {id: 1, apiary_id: 1, honey_collected: -.inf}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := NewFromFile(path)
			assert.ErrorIs(t, err, core.ErrNonFiniteAmount)
		})
	}
}
