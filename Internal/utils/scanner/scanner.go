package scanner

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mox0716/MarketScanner/Internal/strategy/regime"
	"github.com/mox0716/MarketScanner/Internal/types"
	"github.com/mox0716/MarketScanner/Internal/utils/config"
	"github.com/mox0716/MarketScanner/Internal/utils/scoring"
)

// DataProvider is the slice of the market-data client the scanner needs.
type DataProvider interface {
	DailyBars(symbol string, limit int) ([]types.Bar, error)
	AssetSnapshot(symbol string) (*types.AssetSnapshot, error)
}

type SkipReason string

const (
	SkipDataUnavailable     SkipReason = "data_unavailable"
	SkipInsufficientHistory SkipReason = "insufficient_history"
	SkipNotEligible         SkipReason = "not_eligible"
	SkipFilterNotMet        SkipReason = "filter_not_met"
	SkipBacktestRejected    SkipReason = "backtest_rejected"
)

// Outcome is the per-ticker result: either a candidate or a typed skip.
// One ticker's failure never aborts the batch, but the reason is kept so a
// systemic problem (every ticker data_unavailable) stays visible.
type Outcome struct {
	Symbol    string
	Reason    SkipReason
	Detail    string
	Candidate *types.Candidate
}

type Summary struct {
	Candidates []types.Candidate     `json:"candidates"`
	Scanned    int                   `json:"scanned"`
	Skipped    map[SkipReason]int    `json:"skipped"`
	Status     string                `json:"status"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}

type Scanner struct {
	Provider DataProvider
	Cfg      *config.Config
	Profile  *config.ProfileConfig
}

func New(provider DataProvider, cfg *config.Config, profile *config.ProfileConfig) *Scanner {
	return &Scanner{Provider: provider, Cfg: cfg, Profile: profile}
}

// LoadTickerFile reads one symbol per line, dropping blanks and uppercasing.
// A missing file is a recoverable condition: empty list, no error.
func LoadTickerFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Printf("Ticker file %s not found, nothing to scan", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var symbols []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		symbol := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	return symbols, sc.Err()
}

// Run scans the symbol list sequentially with a fixed inter-request delay.
// When the regime gate is enabled and unhealthy, no ticker is evaluated and
// the summary carries the gate's explanation instead of candidates.
func (s *Scanner) Run(symbols []string) Summary {
	summary := Summary{
		Skipped:   map[SkipReason]int{},
		StartedAt: time.Now(),
	}

	if s.Cfg.Regime.Enabled {
		status := s.checkRegime()
		if !status.Healthy {
			summary.Status = fmt.Sprintf("Scan aborted, market unhealthy: %s", status.Reason)
			summary.FinishedAt = time.Now()
			log.Printf("%s", summary.Status)
			return summary
		}
		log.Printf("Market tide check passed: %s", status.Reason)
	}

	if len(symbols) == 0 {
		summary.Status = "No tickers to scan"
		summary.FinishedAt = time.Now()
		return summary
	}

	delay := time.Duration(s.Cfg.Global.RequestDelayMS) * time.Millisecond
	log.Printf("Scanning %d tickers...", len(symbols))

	for i, symbol := range symbols {
		if i > 0 && i%100 == 0 {
			log.Printf("Processing: %d/%d...", i, len(symbols))
		}

		outcome := s.scanOne(symbol)
		summary.Scanned++
		if outcome.Candidate != nil {
			log.Printf("HIT FOUND: %s (RelVol: %.2f, WinRate: %.1f%%)",
				symbol, outcome.Candidate.RelVolume, outcome.Candidate.WinRate)
			summary.Candidates = append(summary.Candidates, *outcome.Candidate)
		} else {
			summary.Skipped[outcome.Reason]++
		}

		if delay > 0 {
			time.Sleep(delay)
		}
	}

	scoring.RankCandidates(summary.Candidates)
	summary.Status = fmt.Sprintf("Scan complete. Found %d qualified setups.", len(summary.Candidates))
	summary.FinishedAt = time.Now()
	log.Printf("%s", summary.Status)
	return summary
}

func (s *Scanner) checkRegime() regime.Status {
	bars, err := s.Provider.DailyBars(s.Cfg.Global.BenchmarkSymbol, s.Cfg.Global.LookbackDays)
	if err != nil {
		return regime.Status{
			Healthy: false,
			Reason:  fmt.Sprintf("benchmark %s unavailable: %v", s.Cfg.Global.BenchmarkSymbol, err),
		}
	}
	return regime.Check(bars, s.Cfg.Regime.SMAPeriod)
}
