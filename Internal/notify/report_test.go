package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/mox0716/MarketScanner/Internal/types"
	"github.com/mox0716/MarketScanner/Internal/utils/scanner"
)

func sampleSummary() scanner.Summary {
	return scanner.Summary{
		Candidates: []types.Candidate{
			{
				Symbol:      "AAPL",
				Price:       189.50,
				StopLoss:    187.61,
				TargetPrice: 195.19,
				ADX:         27.3,
				RelVolume:   1.82,
				WinRate:     61.5,
				ExpReturn:   3.41,
				Signals:     26,
			},
		},
		Scanned: 120,
		Skipped: map[scanner.SkipReason]int{
			scanner.SkipDataUnavailable: 3,
			scanner.SkipFilterNotMet:    110,
		},
		Status:     "Scan complete. Found 1 qualified setups.",
		FinishedAt: time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC),
	}
}

func TestRenderText(t *testing.T) {
	text := RenderText("MarketScanner", sampleSummary())

	for _, want := range []string{"AAPL", "189.50", "61.5%", "2025-06-02", "data_unavailable=3"} {
		if !strings.Contains(text, want) {
			t.Errorf("RenderText() missing %q:\n%s", want, text)
		}
	}
}

func TestRenderText_NoCandidates(t *testing.T) {
	summary := sampleSummary()
	summary.Candidates = nil
	summary.Status = "Scan aborted, market unhealthy: benchmark close below average"

	text := RenderText("MarketScanner", summary)

	if !strings.Contains(text, "No qualified tickers") {
		t.Errorf("RenderText() should state that nothing qualified:\n%s", text)
	}
	if !strings.Contains(text, "market unhealthy") {
		t.Errorf("RenderText() should surface the abort status:\n%s", text)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("MarketScanner", sampleSummary())
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	for _, want := range []string{"<td>AAPL</td>", "61.5%", "MarketScanner daily scan"} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderHTML() missing %q", want)
		}
	}
}

func TestSubject(t *testing.T) {
	subject := Subject("MarketScanner", sampleSummary())
	if !strings.Contains(subject, "1 setups") || !strings.Contains(subject, "Jun 2, 2025") {
		t.Errorf("Subject() = %q", subject)
	}
}
