package regime

import (
	"strings"
	"testing"

	"github.com/mox0716/MarketScanner/Internal/types"
)

func decliningBars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	price := 130.0
	for i := 0; i < n; i++ {
		price -= 1.0
		// closes on its low: weak into the bell
		bars[i] = types.Bar{Open: price + 1, High: price + 2, Low: price, Close: price, Volume: 1_000_000}
	}
	return bars
}

func risingBars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price += 1.0
		bars[i] = types.Bar{Open: price - 1, High: price + 1, Low: price - 2, Close: price, Volume: 1_000_000}
	}
	return bars
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		bars        []types.Bar
		wantHealthy bool
		wantReason  string
	}{
		{
			name:        "close above rolling average is healthy",
			bars:        risingBars(30),
			wantHealthy: true,
			wantReason:  "above",
		},
		{
			name:        "close below average and weak close is unhealthy",
			bars:        decliningBars(30),
			wantHealthy: false,
			wantReason:  "below",
		},
		{
			name:        "too little benchmark history is unhealthy",
			bars:        risingBars(10),
			wantHealthy: false,
			wantReason:  "too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Check(tt.bars, 20)
			if status.Healthy != tt.wantHealthy {
				t.Errorf("Check() Healthy = %v, want %v (reason: %s)",
					status.Healthy, tt.wantHealthy, status.Reason)
			}
			if !strings.Contains(status.Reason, tt.wantReason) {
				t.Errorf("Check() Reason = %q, want it to contain %q", status.Reason, tt.wantReason)
			}
		})
	}
}

func TestCheck_UpperHalfCloseRescuesFlatMarket(t *testing.T) {
	// Sideways series: close equals the average, so only the close position
	// in the day's range keeps the gate open.
	bars := make([]types.Bar, 30)
	for i := range bars {
		bars[i] = types.Bar{Open: 100, High: 101, Low: 98, Close: 100, Volume: 1_000_000}
	}

	status := Check(bars, 20)
	if !status.Healthy {
		t.Errorf("Check() Healthy = false, want true when closing in upper half of range (reason: %s)", status.Reason)
	}
}
