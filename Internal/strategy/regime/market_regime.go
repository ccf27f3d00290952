package regime

import (
	"fmt"
	"math"

	"github.com/mox0716/MarketScanner/Internal/strategy/indicators"
	"github.com/mox0716/MarketScanner/Internal/types"
)

// Status is the result of the market-tide check run before any ticker is
// scanned. A plain boolean gate: no hysteresis, no retry.
type Status struct {
	Healthy bool
	Reason  string
}

// Check declares the broad market healthy when the benchmark's latest close
// sits above its rolling average, or failing that, when it closed in the
// upper half of the day's range.
func Check(bars []types.Bar, smaPeriod int) Status {
	if len(bars) < smaPeriod {
		return Status{
			Healthy: false,
			Reason:  fmt.Sprintf("benchmark history too short (%d bars, need %d)", len(bars), smaPeriod),
		}
	}

	last := bars[len(bars)-1]
	sma := indicators.CalculateSMA(closesOf(bars), smaPeriod)
	avg := sma[len(sma)-1]

	if !math.IsNaN(avg) && last.Close > avg {
		return Status{Healthy: true, Reason: fmt.Sprintf("benchmark close %.2f above %d-day average %.2f", last.Close, smaPeriod, avg)}
	}
	if indicators.ClosePosition(last) >= 0.5 {
		return Status{Healthy: true, Reason: "benchmark closed in the upper half of its range"}
	}

	return Status{
		Healthy: false,
		Reason:  fmt.Sprintf("benchmark close %.2f below %d-day average %.2f and weak into the close", last.Close, smaPeriod, avg),
	}
}

func closesOf(bars []types.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}
