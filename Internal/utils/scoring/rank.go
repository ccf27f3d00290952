package scoring

import (
	"sort"

	"github.com/mox0716/MarketScanner/Internal/types"
)

// RankCandidates orders qualified setups best-first: highest expected
// return, then highest win rate, then symbol for a stable report.
func RankCandidates(candidates []types.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ExpReturn != candidates[j].ExpReturn {
			return candidates[i].ExpReturn > candidates[j].ExpReturn
		}
		if candidates[i].WinRate != candidates[j].WinRate {
			return candidates[i].WinRate > candidates[j].WinRate
		}
		return candidates[i].Symbol < candidates[j].Symbol
	})
}

// Grade buckets a backtested win rate for the report.
func Grade(winRate float64) string {
	if winRate >= 75.0 {
		return "Excellent"
	}
	if winRate >= 65.0 {
		return "Good"
	}
	if winRate >= 55.0 {
		return "Fair"
	}
	return "Poor"
}
