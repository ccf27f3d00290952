package scanner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mox0716/MarketScanner/Internal/strategy/indicators"
	"github.com/mox0716/MarketScanner/Internal/strategy/metrics"
	"github.com/mox0716/MarketScanner/Internal/strategy/signals"
	"github.com/mox0716/MarketScanner/Internal/types"
	"github.com/mox0716/MarketScanner/Internal/utils"
)

// scanOne runs the full pipeline for a single ticker:
// fetch -> eligibility -> indicators -> live filter -> backtest -> candidate.
func (s *Scanner) scanOne(symbol string) Outcome {
	bars, err := s.Provider.DailyBars(symbol, s.Cfg.Global.LookbackDays)
	if err != nil {
		return Outcome{Symbol: symbol, Reason: SkipDataUnavailable, Detail: err.Error()}
	}
	if len(bars) < s.Cfg.Global.MinHistoryBars {
		return Outcome{
			Symbol: symbol,
			Reason: SkipInsufficientHistory,
			Detail: fmt.Sprintf("%d bars, need %d", len(bars), s.Cfg.Global.MinHistoryBars),
		}
	}

	if outcome := s.checkEligibility(symbol, bars); outcome != nil {
		return *outcome
	}

	filter := s.setupFilter()
	ind := indicators.CalculateAll(bars, s.Profile.Filter.RelVolumePeriod)

	last := len(bars) - 1
	liveResult := filter.Check(signals.SnapshotAt(bars, ind, last))
	if !liveResult.Passed {
		return Outcome{Symbol: symbol, Reason: SkipFilterNotMet, Detail: liveResult.FailureReason}
	}

	// Probability backtest: the same predicate replayed over the ticker's
	// own history.
	stats := metrics.ReplayFilter(bars, ind, filter, s.Profile.Backtest.HorizonBars)
	policy := metrics.AcceptancePolicy{
		MinWinRate:   s.Profile.Backtest.MinWinRate,
		MinAvgReturn: s.Profile.Backtest.MinAvgReturn,
	}
	if !policy.Accept(stats) {
		return Outcome{
			Symbol: symbol,
			Reason: SkipBacktestRejected,
			Detail: fmt.Sprintf("win rate %.1f%%, avg return %.2f%% over %d signals",
				stats.WinRate, stats.AvgReturn, stats.Signals),
		}
	}

	price := bars[last].Close
	candidate := &types.Candidate{
		Symbol:      symbol,
		Price:       roundCents(price),
		StopLoss:    roundCents(price * (1 - s.Profile.StopLossPercent/100)),
		TargetPrice: roundCents(price * (1 + s.Profile.TargetPercent/100)),
		ADX:         roundTo(ind.ADX[last], 1),
		RelVolume:   roundCents(ind.RelVolume[last]),
		WinRate:     roundTo(stats.WinRate, 1),
		ExpReturn:   roundCents(stats.AvgReturn),
		Signals:     stats.Signals,
	}
	return Outcome{Symbol: symbol, Candidate: candidate}
}

// checkEligibility applies the base gates that run before any indicator
// math. Returns nil when the ticker is eligible.
func (s *Scanner) checkEligibility(symbol string, bars []types.Bar) *Outcome {
	gates := s.Profile.Eligibility
	last := bars[len(bars)-1]

	// Trailing 20-day average volume, excluding today's still-forming bar.
	volumes := make([]int64, len(bars)-1)
	for i := range volumes {
		volumes[i] = bars[i].Volume
	}
	avgVol := utils.CalculateAvgVolume(volumes, 20)

	if gates.MinAvgVolume > 0 && avgVol < gates.MinAvgVolume {
		return &Outcome{
			Symbol: symbol,
			Reason: SkipNotEligible,
			Detail: fmt.Sprintf("avg volume %.0f below %.0f", avgVol, gates.MinAvgVolume),
		}
	}
	if gates.MinPrice > 0 && last.Close < gates.MinPrice {
		return &Outcome{
			Symbol: symbol,
			Reason: SkipNotEligible,
			Detail: fmt.Sprintf("price %.2f below %.2f", last.Close, gates.MinPrice),
		}
	}
	if gates.MinDollarVolume > 0 && avgVol*last.Close < gates.MinDollarVolume {
		return &Outcome{
			Symbol: symbol,
			Reason: SkipNotEligible,
			Detail: fmt.Sprintf("dollar volume %.0f below %.0f", avgVol*last.Close, gates.MinDollarVolume),
		}
	}

	if gates.MinMarketCap > 0 {
		snapshot, err := s.Provider.AssetSnapshot(symbol)
		if err != nil {
			return &Outcome{Symbol: symbol, Reason: SkipDataUnavailable, Detail: err.Error()}
		}
		if snapshot.MarketCap < gates.MinMarketCap {
			return &Outcome{
				Symbol: symbol,
				Reason: SkipNotEligible,
				Detail: fmt.Sprintf("market cap %.0f below %.0f", snapshot.MarketCap, gates.MinMarketCap),
			}
		}
	}

	return nil
}

func (s *Scanner) setupFilter() *signals.SetupFilter {
	filter := signals.NewSetupFilter()
	filter.MinADX = s.Profile.Filter.MinADX
	filter.RequireADXRising = s.Profile.Filter.RequireADXRising
	filter.MinRelVolume = s.Profile.Filter.MinRelVolume
	filter.MaxRangeATRRatio = s.Profile.Filter.MaxRangeATRRatio
	filter.RequireVPTRising = s.Profile.Filter.RequireVPTRising
	return filter
}

func roundCents(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}
