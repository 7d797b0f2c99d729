package core

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFleetTotals(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		apiaries := []Apiary{
			{HiveCount: 12, TotalHoney: 324, Status: StatusActive},
			{HiveCount: 8, TotalHoney: 256, Status: StatusActive},
			{HiveCount: 15, TotalHoney: 390, Status: StatusMaintenance},
		}
		got := ComputeFleetTotals(apiaries)
		assert.Equal(t, FleetTotals{TotalHoney: 970, TotalHives: 35, ActiveCount: 2}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, FleetTotals{}, ComputeFleetTotals(nil))
		assert.Equal(t, FleetTotals{}, ComputeFleetTotals([]Apiary{}))
	})

	t.Run("dormant is not active", func(t *testing.T) {
		got := ComputeFleetTotals([]Apiary{{HiveCount: 3, Status: StatusDormant}})
		assert.Equal(t, 0, got.ActiveCount)
		assert.Equal(t, 3, got.TotalHives)
	})
}

func TestComputeFleetTotalsProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	statuses := Statuses()
	for iter := 0; iter < 200; iter++ {
		n := rng.IntN(20)
		apiaries := make([]Apiary, n)
		wantHives := 0
		for i := range apiaries {
			apiaries[i] = Apiary{
				ID:         i + 1,
				HiveCount:  rng.IntN(50),
				TotalHoney: float64(rng.IntN(1000)),
				Status:     statuses[rng.IntN(len(statuses))],
			}
			wantHives += apiaries[i].HiveCount
		}
		got := ComputeFleetTotals(apiaries)
		require.Equal(t, wantHives, got.TotalHives)
		require.LessOrEqual(t, got.ActiveCount, len(apiaries))
		require.Equal(t, got, ComputeFleetTotals(apiaries), "recomputation must be deterministic")
	}
}

func TestComputeSeasonStats(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		records := []HarvestRecord{
			{Amount: 45, Season: Spring},
			{Amount: 62, Season: Summer},
			{Amount: 38, Season: Summer},
		}
		got := ComputeSeasonStats(records, Seasons())
		assert.Equal(t, []SeasonStat{
			{Season: Spring, Total: 45, Count: 1},
			{Season: Summer, Total: 100, Count: 2},
			{Season: Autumn, Total: 0, Count: 0},
		}, got)
	})

	t.Run("no records keeps every season", func(t *testing.T) {
		got := ComputeSeasonStats(nil, Seasons())
		require.Len(t, got, 3)
		for i, s := range Seasons() {
			assert.Equal(t, SeasonStat{Season: s}, got[i])
		}
	})

	t.Run("caller ordering is preserved", func(t *testing.T) {
		order := []Season{Autumn, Spring}
		got := ComputeSeasonStats([]HarvestRecord{{Amount: 5, Season: Spring}}, order)
		require.Len(t, got, 2)
		assert.Equal(t, Autumn, got[0].Season)
		assert.Equal(t, Spring, got[1].Season)
		assert.Equal(t, 5.0, got[1].Total)
	})
}

func TestComputeSeasonStatsProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	seasons := Seasons()
	for iter := 0; iter < 200; iter++ {
		n := rng.IntN(30)
		records := make([]HarvestRecord, n)
		var wantSum float64
		for i := range records {
			records[i] = HarvestRecord{
				HiveID: rng.IntN(5) + 1,
				Amount: float64(rng.IntN(100)),
				Season: seasons[rng.IntN(len(seasons))],
			}
			wantSum += records[i].Amount
		}
		got := ComputeSeasonStats(records, seasons)
		require.Len(t, got, len(seasons))

		var sum float64
		var count int
		for i, st := range got {
			require.Equal(t, seasons[i], st.Season)
			sum += st.Total
			count += st.Count
		}
		require.InDelta(t, wantSum, sum, 1e-9)
		require.Equal(t, len(records), count)
		require.Equal(t, got, ComputeSeasonStats(records, seasons))
	}
}

func TestResolveApiaryForHive(t *testing.T) {
	apiaries := []Apiary{{ID: 1, Name: "Солнечная поляна"}, {ID: 2, Name: "Лесная опушка"}}

	a, ok := ResolveApiaryForHive(Hive{ID: 4, ApiaryID: 2}, apiaries)
	require.True(t, ok)
	assert.Equal(t, "Лесная опушка", a.Name)

	a, ok = ResolveApiaryForHive(Hive{ID: 9, ApiaryID: 42}, apiaries)
	assert.False(t, ok)
	assert.Equal(t, Apiary{}, a)

	_, ok = ResolveApiaryForHive(Hive{ApiaryID: 1}, nil)
	assert.False(t, ok)
}

func TestResolveApiaryForHiveFirstMatchWins(t *testing.T) {
	apiaries := []Apiary{{ID: 1, Name: "first"}, {ID: 1, Name: "second"}}
	a, ok := ResolveApiaryForHive(Hive{ApiaryID: 1}, apiaries)
	require.True(t, ok)
	assert.Equal(t, "first", a.Name)
}

func TestResolveHiveForRecord(t *testing.T) {
	hives := []Hive{{ID: 1, Number: "П1-01"}, {ID: 4, Number: "Л2-01"}}

	h, ok := ResolveHiveForRecord(HarvestRecord{HiveID: 4}, hives)
	require.True(t, ok)
	assert.Equal(t, "Л2-01", h.Number)

	h, ok = ResolveHiveForRecord(HarvestRecord{HiveID: 99}, hives)
	assert.False(t, ok)
	assert.Empty(t, h.Number)
}

func TestRecentHarvests(t *testing.T) {
	records := make([]HarvestRecord, 7)
	for i := range records {
		records[i].HiveID = i + 1
	}

	got := RecentHarvests(records, RecentHarvestLimit)
	require.Len(t, got, 5)
	assert.Equal(t, 1, got[0].HiveID)
	assert.Equal(t, 5, got[4].HiveID)

	assert.Len(t, RecentHarvests(records[:2], RecentHarvestLimit), 2)
	assert.Empty(t, RecentHarvests(records, 0))
	assert.Empty(t, RecentHarvests(nil, 5))

	got[0].HiveID = 100
	assert.Equal(t, 1, records[0].HiveID, "result must not alias the input")
}

func TestSeasonProgress(t *testing.T) {
	cases := []struct {
		total float64
		want  int
	}{
		{0, 0},
		{-10, 0},
		{97, 49},
		{100, 50},
		{130, 65},
		{200, 100},
		{450, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SeasonProgress(tc.total, SeasonScaleKg), "total=%v", tc.total)
	}
	assert.Equal(t, 0, SeasonProgress(10, 0))
}

func TestSeasonProgressNonFinite(t *testing.T) {
	assert.Equal(t, 100, SeasonProgress(math.Inf(1), SeasonScaleKg))
	assert.Equal(t, 0, SeasonProgress(math.Inf(-1), SeasonScaleKg))
	assert.Equal(t, 0, SeasonProgress(math.NaN(), SeasonScaleKg))
	assert.Equal(t, 0, SeasonProgress(50, math.NaN()))
	assert.Equal(t, 0, SeasonProgress(50, math.Inf(1)))
	assert.Equal(t, 100, SeasonProgress(math.MaxFloat64, SeasonScaleKg))
}
