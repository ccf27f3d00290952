package signals

import (
	"fmt"
	"math"

	"github.com/mox0716/MarketScanner/Internal/strategy/indicators"
	"github.com/mox0716/MarketScanner/Internal/types"
)

// Snapshot is everything the setup filter looks at for a single bar. The same
// snapshot shape feeds both the live evaluation and the historical replay, so
// the predicate cannot drift between the two.
type Snapshot struct {
	Close     float64
	SMA10     float64
	SMA20     float64
	ADX       float64
	PrevADX   float64
	RelVolume float64
	DayRange  float64
	ATR       float64
	VPT       float64
	PrevVPT   float64
}

// SetupFilter is the threshold stack. Zero-valued optional thresholds
// (MaxRangeATRRatio) disable their check.
type SetupFilter struct {
	MinADX           float64
	RequireADXRising bool
	MinRelVolume     float64
	MaxRangeATRRatio float64
	RequireVPTRising bool
}

type FilterResult struct {
	Passed        bool
	FailureReason string
}

func NewSetupFilter() *SetupFilter {
	return &SetupFilter{
		MinADX:           20.0,
		RequireADXRising: true,
		MinRelVolume:     1.5,
		MaxRangeATRRatio: 0,
		RequireVPTRising: false,
	}
}

// SnapshotAt builds the filter input for bar i from precomputed series.
// Previous-bar fields read as NaN at i == 0 and fail the readiness check.
func SnapshotAt(bars []types.Bar, ind *indicators.Set, i int) Snapshot {
	s := Snapshot{
		Close:     bars[i].Close,
		SMA10:     ind.SMA10[i],
		SMA20:     ind.SMA20[i],
		ADX:       ind.ADX[i],
		PrevADX:   math.NaN(),
		RelVolume: ind.RelVolume[i],
		DayRange:  bars[i].High - bars[i].Low,
		ATR:       ind.ATR[i],
		VPT:       ind.VPT[i],
		PrevVPT:   math.NaN(),
	}
	if i > 0 {
		s.PrevADX = ind.ADX[i-1]
		s.PrevVPT = ind.VPT[i-1]
	}
	return s
}

// Evaluate is the single predicate applied to the latest bar and to every
// historical bar during backtest replay.
func (f *SetupFilter) Evaluate(s Snapshot) bool {
	return f.Check(s).Passed
}

func (f *SetupFilter) Check(s Snapshot) FilterResult {
	if !s.ready(f) {
		return FilterResult{FailureReason: "indicators not ready (insufficient history)"}
	}

	if !(s.Close > s.SMA10 && s.SMA10 > s.SMA20) {
		return FilterResult{FailureReason: "no trend alignment (close > SMA10 > SMA20 required)"}
	}

	if s.ADX <= f.MinADX {
		return FilterResult{FailureReason: fmt.Sprintf("ADX %.1f below minimum %.1f", s.ADX, f.MinADX)}
	}
	if f.RequireADXRising && s.ADX <= s.PrevADX {
		return FilterResult{FailureReason: fmt.Sprintf("ADX %.1f not rising (prev %.1f)", s.ADX, s.PrevADX)}
	}

	if s.RelVolume < f.MinRelVolume {
		return FilterResult{FailureReason: fmt.Sprintf("relative volume %.2f below %.2f", s.RelVolume, f.MinRelVolume)}
	}

	if f.MaxRangeATRRatio > 0 && s.DayRange > s.ATR*f.MaxRangeATRRatio {
		return FilterResult{FailureReason: fmt.Sprintf("range %.2f exceeds %.1fx ATR (exhaustion)", s.DayRange, f.MaxRangeATRRatio)}
	}

	if f.RequireVPTRising && s.VPT <= s.PrevVPT {
		return FilterResult{FailureReason: "VPT not rising (no accumulation)"}
	}

	return FilterResult{Passed: true}
}

// ready reports whether every field the active checks read has a defined
// value. Leading rolling-window rows are NaN and must never fire.
func (s Snapshot) ready(f *SetupFilter) bool {
	required := []float64{s.Close, s.SMA10, s.SMA20, s.ADX, s.RelVolume}
	if f.RequireADXRising {
		required = append(required, s.PrevADX)
	}
	if f.MaxRangeATRRatio > 0 {
		required = append(required, s.ATR)
	}
	if f.RequireVPTRising {
		required = append(required, s.VPT, s.PrevVPT)
	}
	for _, v := range required {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}
