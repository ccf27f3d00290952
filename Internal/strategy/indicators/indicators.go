package indicators

import (
	"math"

	"github.com/mox0716/MarketScanner/Internal/types"
)

// All series functions return a slice the same length as the input, with NaN
// for rows where the rolling window is not yet filled. Callers must treat NaN
// rows as "not ready" rather than expecting an error.

// Set bundles the per-bar series the setup filter and backtest read.
type Set struct {
	SMA10     []float64
	SMA20     []float64
	ATR       []float64
	ADX       []float64
	VPT       []float64
	RelVolume []float64
}

func CalculateAll(bars []types.Bar, relVolPeriod int) *Set {
	closes := make([]float64, len(bars))
	volumes := make([]int64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
		volumes[i] = bar.Volume
	}

	return &Set{
		SMA10:     CalculateSMA(closes, 10),
		SMA20:     CalculateSMA(closes, 20),
		ATR:       CalculateATR(bars, 14),
		ADX:       CalculateADX(bars, 14),
		VPT:       CalculateVPT(bars),
		RelVolume: RelativeVolume(volumes, relVolPeriod),
	}
}

func CalculateSMA(values []float64, period int) []float64 {
	return rollingMean(values, period)
}

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|). The first
// bar has no previous close, so its true range is just the day's range.
func TrueRange(bars []types.Bar) []float64 {
	tr := make([]float64, len(bars))
	for i, bar := range bars {
		tr[i] = bar.High - bar.Low
		if i == 0 {
			continue
		}
		prevClose := bars[i-1].Close
		if hc := math.Abs(bar.High - prevClose); hc > tr[i] {
			tr[i] = hc
		}
		if lc := math.Abs(bar.Low - prevClose); lc > tr[i] {
			tr[i] = lc
		}
	}
	return tr
}

func CalculateATR(bars []types.Bar, period int) []float64 {
	return rollingMean(TrueRange(bars), period)
}

// CalculateADX uses the rolling-mean smoothing variant: directional deltas
// are clipped to zero when negative or dominated by the opposite direction,
// DI = 100*SMA(DM)/SMA(TR), DX = 100*|+DI - -DI|/(+DI + -DI), and ADX is a
// rolling mean of DX. Defined from index 2*period-2 onward.
func CalculateADX(bars []types.Bar, period int) []float64 {
	n := len(bars)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	smoothPlus := rollingMean(plusDM, period)
	smoothMinus := rollingMean(minusDM, period)
	smoothTR := rollingMean(TrueRange(bars), period)

	dx := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(smoothTR[i]) || smoothTR[i] == 0 {
			continue
		}
		plusDI := 100 * smoothPlus[i] / smoothTR[i]
		minusDI := 100 * smoothMinus[i] / smoothTR[i]
		if plusDI+minusDI == 0 {
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	return rollingMean(dx, period)
}

// CalculateVPT is the cumulative sum of volume weighted by percentage price
// change. The first row has no prior close and contributes zero.
func CalculateVPT(bars []types.Bar) []float64 {
	vpt := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		vpt[i] = vpt[i-1]
		if prev := bars[i-1].Close; prev != 0 {
			vpt[i] += float64(bars[i].Volume) * (bars[i].Close - prev) / prev
		}
	}
	return vpt
}

// RelativeVolume divides each bar's volume by the trailing average of the
// `period` bars before it. The current bar is excluded from the average so a
// volume spike today does not dilute its own baseline.
func RelativeVolume(volumes []int64, period int) []float64 {
	rv := nanSlice(len(volumes))
	for i := period; i < len(volumes); i++ {
		var sum int64
		for j := i - period; j < i; j++ {
			sum += volumes[j]
		}
		avg := float64(sum) / float64(period)
		if avg > 0 {
			rv[i] = float64(volumes[i]) / avg
		} else {
			rv[i] = 0
		}
	}
	return rv
}

// ClosePosition is where the close sits inside the day's range, 0 at the low
// and 1 at the high. A zero-range bar reads as the midpoint.
func ClosePosition(bar types.Bar) float64 {
	dayRange := bar.High - bar.Low
	if dayRange == 0 {
		return 0.5
	}
	return (bar.Close - bar.Low) / dayRange
}

// rollingMean matches pandas semantics: the window must be full and free of
// NaN inputs, otherwise the output row is NaN.
func rollingMean(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		valid := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if valid {
			out[i] = sum / float64(period)
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
