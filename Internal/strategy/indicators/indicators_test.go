package indicators

import (
	"math"
	"testing"

	"github.com/mox0716/MarketScanner/Internal/types"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestCalculateSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	sma := CalculateSMA(values, 3)

	if len(sma) != len(values) {
		t.Fatalf("CalculateSMA() returned %d values, want %d", len(sma), len(values))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(sma[i]) {
			t.Errorf("sma[%d] = %v, want NaN before window fills", i, sma[i])
		}
	}

	want := []float64{2, 3, 4}
	for i, w := range want {
		if !approxEqual(sma[i+2], w, 1e-9) {
			t.Errorf("sma[%d] = %v, want %v", i+2, sma[i+2], w)
		}
	}
}

func TestTrueRangeAndATR(t *testing.T) {
	bars := []types.Bar{
		{High: 10, Low: 8, Close: 9},
		{High: 11, Low: 9, Close: 10},
		{High: 15, Low: 13, Close: 14}, // gap up: TR driven by |high-prevClose|
	}

	tr := TrueRange(bars)
	wantTR := []float64{2, 2, 5}
	for i, w := range wantTR {
		if !approxEqual(tr[i], w, 1e-9) {
			t.Errorf("tr[%d] = %v, want %v", i, tr[i], w)
		}
	}

	atr := CalculateATR(bars, 2)
	if !math.IsNaN(atr[0]) {
		t.Errorf("atr[0] = %v, want NaN", atr[0])
	}
	if !approxEqual(atr[1], 2, 1e-9) {
		t.Errorf("atr[1] = %v, want 2", atr[1])
	}
	if !approxEqual(atr[2], 3.5, 1e-9) {
		t.Errorf("atr[2] = %v, want 3.5", atr[2])
	}
}

func TestCalculateADX(t *testing.T) {
	// Strictly one-directional series: -DM is always zero, so DX locks at
	// 100 once the windows fill and ADX follows.
	var bars []types.Bar
	for i := 0; i < 8; i++ {
		base := 100.0 + float64(i)
		bars = append(bars, types.Bar{
			Open:  base,
			High:  base + 1,
			Low:   base - 1,
			Close: base + 0.5,
		})
	}

	adx := CalculateADX(bars, 3)
	// DI needs a 3-window, DX another 3-window on top: defined from index 4.
	for i := 0; i < 4; i++ {
		if !math.IsNaN(adx[i]) {
			t.Errorf("adx[%d] = %v, want NaN before windows fill", i, adx[i])
		}
	}
	for i := 4; i < len(adx); i++ {
		if !approxEqual(adx[i], 100, 1e-9) {
			t.Errorf("adx[%d] = %v, want 100 for one-directional series", i, adx[i])
		}
	}
}

func TestCalculateVPT(t *testing.T) {
	bars := []types.Bar{
		{Close: 10, Volume: 100},
		{Close: 11, Volume: 100}, // +10% on 100 shares -> +10
		{Close: 11, Volume: 500}, // flat, no contribution
		{Close: 9.9, Volume: 200}, // -10% on 200 shares -> -20
	}

	vpt := CalculateVPT(bars)
	want := []float64{0, 10, 10, -10}
	for i, w := range want {
		if !approxEqual(vpt[i], w, 1e-9) {
			t.Errorf("vpt[%d] = %v, want %v", i, vpt[i], w)
		}
	}
}

func TestRelativeVolume(t *testing.T) {
	volumes := []int64{100, 100, 100, 200}
	rv := RelativeVolume(volumes, 3)

	for i := 0; i < 3; i++ {
		if !math.IsNaN(rv[i]) {
			t.Errorf("rv[%d] = %v, want NaN before baseline fills", i, rv[i])
		}
	}
	// 200 against a trailing average of 100 that excludes the spike itself.
	if !approxEqual(rv[3], 2.0, 1e-9) {
		t.Errorf("rv[3] = %v, want 2.0", rv[3])
	}
}

func TestClosePosition(t *testing.T) {
	tests := []struct {
		name string
		bar  types.Bar
		want float64
	}{
		{"close at high", types.Bar{High: 10, Low: 8, Close: 10}, 1.0},
		{"close at low", types.Bar{High: 10, Low: 8, Close: 8}, 0.0},
		{"close mid range", types.Bar{High: 10, Low: 8, Close: 9}, 0.5},
		{"zero range bar", types.Bar{High: 10, Low: 10, Close: 10}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosePosition(tt.bar)
			if !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("ClosePosition() = %v, want %v", got, tt.want)
			}
		})
	}
}
