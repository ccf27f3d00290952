package metrics

import (
	"math"
	"testing"

	"github.com/mox0716/MarketScanner/Internal/strategy/indicators"
	"github.com/mox0716/MarketScanner/Internal/strategy/signals"
	"github.com/mox0716/MarketScanner/Internal/types"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestStatsFromReturns(t *testing.T) {
	stats := StatsFromReturns([]float64{0.02, -0.01, 0.04})

	if stats.Signals != 3 {
		t.Errorf("Signals = %d, want 3", stats.Signals)
	}
	if stats.Wins != 2 {
		t.Errorf("Wins = %d, want 2", stats.Wins)
	}
	if !approxEqual(stats.WinRate, 200.0/3.0, 0.001) {
		t.Errorf("WinRate = %.4f, want 66.6667", stats.WinRate)
	}
	if !approxEqual(stats.AvgReturn, 5.0/3.0, 0.001) {
		t.Errorf("AvgReturn = %.4f, want 1.6667", stats.AvgReturn)
	}
}

func TestStatsFromReturns_NoSignals(t *testing.T) {
	stats := StatsFromReturns(nil)

	if stats.Signals != 0 || stats.Wins != 0 || stats.WinRate != 0 || stats.AvgReturn != 0 {
		t.Errorf("empty returns must yield zero stats, got %+v", stats)
	}
}

func TestAcceptancePolicy(t *testing.T) {
	policy := AcceptancePolicy{MinWinRate: 55.0, MinAvgReturn: 3.0}

	tests := []struct {
		name  string
		stats BacktestStats
		want  bool
	}{
		{"win rate exactly at boundary is excluded", BacktestStats{Signals: 20, WinRate: 55.0, AvgReturn: 5.0}, false},
		{"win rate just above boundary accepted", BacktestStats{Signals: 20, WinRate: 55.1, AvgReturn: 5.0}, true},
		{"avg return exactly at floor is included", BacktestStats{Signals: 20, WinRate: 60.0, AvgReturn: 3.0}, true},
		{"avg return below floor rejected", BacktestStats{Signals: 20, WinRate: 60.0, AvgReturn: 2.99}, false},
		{"no historical signals never pass", BacktestStats{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Accept(tt.stats); got != tt.want {
				t.Errorf("Accept(%+v) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}

func TestReplayFilter_Uptrend(t *testing.T) {
	bars := make([]types.Bar, 80)
	price := 100.0
	for i := range bars {
		price *= 1.012
		bars[i] = types.Bar{
			Open:   price / 1.012,
			High:   price * 1.004,
			Low:    price * 0.996,
			Close:  price,
			Volume: 1_000_000,
		}
	}

	filter := signals.NewSetupFilter()
	filter.RequireADXRising = false
	filter.MinRelVolume = 1.0

	ind := indicators.CalculateAll(bars, 20)
	stats := ReplayFilter(bars, ind, filter, 3)

	if stats.Signals == 0 {
		t.Fatal("ReplayFilter() found no signals on engineered uptrend")
	}
	if stats.Signals > len(bars)-3 {
		t.Errorf("Signals = %d, bars without a forward window must be excluded", stats.Signals)
	}
	if stats.WinRate != 100.0 {
		t.Errorf("WinRate = %.1f, want 100.0 on monotonic uptrend", stats.WinRate)
	}
	// 3 bars at +1.2%/day compounds to ~3.64%.
	if !approxEqual(stats.AvgReturn, 3.64, 0.05) {
		t.Errorf("AvgReturn = %.2f, want ~3.64", stats.AvgReturn)
	}
}
