package metrics

import (
	"math"

	"github.com/mox0716/MarketScanner/Internal/strategy/indicators"
	"github.com/mox0716/MarketScanner/Internal/strategy/signals"
	"github.com/mox0716/MarketScanner/Internal/types"
	"github.com/mox0716/MarketScanner/Internal/utils"
)

// BacktestStats aggregates the forward returns of every historical bar where
// the setup filter fired. WinRate and AvgReturn are percentages. Zero signals
// yields zero stats by construction, which can never pass the strictly
// positive acceptance thresholds.
type BacktestStats struct {
	Signals      int     `json:"signals"`
	Wins         int     `json:"wins"`
	WinRate      float64 `json:"win_rate"`
	AvgReturn    float64 `json:"avg_return"`
	ReturnStdDev float64 `json:"return_std_dev"`
}

// AcceptancePolicy gates candidates on their historical edge. WinRate is a
// strict greater-than (a ticker sitting exactly on the boundary is excluded),
// AvgReturn is greater-or-equal.
type AcceptancePolicy struct {
	MinWinRate   float64
	MinAvgReturn float64
}

func (p AcceptancePolicy) Accept(s BacktestStats) bool {
	return s.WinRate > p.MinWinRate && s.AvgReturn >= p.MinAvgReturn
}

// ReplayFilter applies the same predicate used for the live bar to every
// historical bar and measures the realized return `horizon` bars forward.
// The final bars have no complete forward window and are never counted.
func ReplayFilter(bars []types.Bar, ind *indicators.Set, filter *signals.SetupFilter, horizon int) BacktestStats {
	var returns []float64
	for i := 0; i+horizon < len(bars); i++ {
		if !filter.Evaluate(signals.SnapshotAt(bars, ind, i)) {
			continue
		}
		entry := bars[i].Close
		if entry == 0 {
			continue
		}
		returns = append(returns, (bars[i+horizon].Close-entry)/entry)
	}
	return StatsFromReturns(returns)
}

// StatsFromReturns folds raw forward returns (fractions, not percent) into
// aggregate statistics.
func StatsFromReturns(returns []float64) BacktestStats {
	stats := BacktestStats{Signals: len(returns)}
	if stats.Signals == 0 {
		return stats
	}

	total := 0.0
	for _, r := range returns {
		if r > 0 {
			stats.Wins++
		}
		total += r
	}
	stats.WinRate = float64(stats.Wins) / float64(stats.Signals) * 100
	stats.AvgReturn = total / float64(stats.Signals) * 100
	stats.ReturnStdDev = standardDeviation(returns) * 100
	return stats
}

func standardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	mean := utils.Average(values)
	varianceSum := 0.0
	for _, v := range values {
		varianceSum += (v - mean) * (v - mean)
	}
	variance := varianceSum / float64(len(values))
	return math.Sqrt(variance)
}
