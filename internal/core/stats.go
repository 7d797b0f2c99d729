package core

import "math"

// SeasonScaleKg is the harvest total that fills a season progress bar.
const SeasonScaleKg = 200

// RecentHarvestLimit is how many harvest records the dashboard lists.
const RecentHarvestLimit = 5

// FleetTotals aggregates every apiary on the dashboard.
type FleetTotals struct {
	TotalHoney  float64
	TotalHives  int
	ActiveCount int
}

// SeasonStat is the harvest rollup of a single season.
type SeasonStat struct {
	Season Season
	Total  float64
	Count  int
}

// ComputeFleetTotals sums honey and hives over all apiaries and counts the
// active ones. An empty slice yields the zero value.
func ComputeFleetTotals(apiaries []Apiary) FleetTotals {
	var t FleetTotals
	for _, a := range apiaries {
		t.TotalHoney += a.TotalHoney
		t.TotalHives += a.HiveCount
		if a.Status == StatusActive {
			t.ActiveCount++
		}
	}
	return t
}

// ComputeSeasonStats returns one entry per season, in the order given, even
// for seasons without any matching record.
func ComputeSeasonStats(records []HarvestRecord, seasons []Season) []SeasonStat {
	out := make([]SeasonStat, len(seasons))
	for i, s := range seasons {
		out[i].Season = s
		for _, r := range records {
			if r.Season != s {
				continue
			}
			out[i].Total += r.Amount
			out[i].Count++
		}
	}
	return out
}

// ResolveApiaryForHive returns the first apiary whose ID matches hive.ApiaryID.
func ResolveApiaryForHive(hive Hive, apiaries []Apiary) (Apiary, bool) {
	for _, a := range apiaries {
		if a.ID == hive.ApiaryID {
			return a, true
		}
	}
	return Apiary{}, false
}

// ResolveHiveForRecord returns the first hive whose ID matches record.HiveID.
func ResolveHiveForRecord(record HarvestRecord, hives []Hive) (Hive, bool) {
	for _, h := range hives {
		if h.ID == record.HiveID {
			return h, true
		}
	}
	return Hive{}, false
}

// RecentHarvests returns at most n records in stored order.
func RecentHarvests(records []HarvestRecord, n int) []HarvestRecord {
	if n <= 0 {
		return []HarvestRecord{}
	}
	if n > len(records) {
		n = len(records)
	}
	return append([]HarvestRecord(nil), records[:n]...)
}

// SeasonProgress converts a season total into a 0-100 bar width against scale.
// NaN inputs yield 0; +Inf totals fill the bar.
func SeasonProgress(total, scale float64) int {
	if math.IsNaN(total) || math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 || total <= 0 {
		return 0
	}
	pct := total / scale * 100
	if pct >= 100 {
		return 100
	}
	return int(pct + 0.5)
}
