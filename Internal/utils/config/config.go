package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// The historical scanner scripts differed only in thresholds and which
// optional checks were active. Those variations live here as named profiles;
// the pipeline itself is shared.
type Config struct {
	Global struct {
		BenchmarkSymbol string `yaml:"benchmark_symbol"`
		LookbackDays    int    `yaml:"lookback_days"`
		MinHistoryBars  int    `yaml:"min_history_bars"`
		RequestDelayMS  int    `yaml:"request_delay_ms"`
		ReportLabel     string `yaml:"report_label"`
	} `yaml:"global"`

	Regime struct {
		Enabled   bool `yaml:"enabled"`
		SMAPeriod int  `yaml:"sma_period"`
	} `yaml:"regime"`

	Notifications struct {
		Channels struct {
			Console bool `yaml:"console"`
			Email   bool `yaml:"email"`
		} `yaml:"channels"`
	} `yaml:"notifications"`

	Profiles map[string]ProfileConfig `yaml:"profiles"`
}

type ProfileConfig struct {
	Eligibility     EligibilityConfig `yaml:"eligibility"`
	Filter          FilterConfig      `yaml:"filter"`
	Backtest        BacktestConfig    `yaml:"backtest"`
	StopLossPercent float64           `yaml:"stop_loss_percent"`
	TargetPercent   float64           `yaml:"target_percent"`
}

// Eligibility gates run before any indicator math. A zero threshold disables
// its gate.
type EligibilityConfig struct {
	MinAvgVolume    float64 `yaml:"min_avg_volume"`
	MinPrice        float64 `yaml:"min_price"`
	MinDollarVolume float64 `yaml:"min_dollar_volume"`
	MinMarketCap    float64 `yaml:"min_market_cap"`
}

type FilterConfig struct {
	MinADX           float64 `yaml:"min_adx"`
	RequireADXRising bool    `yaml:"require_adx_rising"`
	MinRelVolume     float64 `yaml:"min_rel_volume"`
	RelVolumePeriod  int     `yaml:"rel_volume_period"`
	MaxRangeATRRatio float64 `yaml:"max_range_atr_ratio"`
	RequireVPTRising bool    `yaml:"require_vpt_rising"`
}

type BacktestConfig struct {
	HorizonBars  int     `yaml:"horizon_bars"`
	MinWinRate   float64 `yaml:"min_win_rate"`
	MinAvgReturn float64 `yaml:"min_avg_return"`
}

func LoadConfig() (*Config, error) {
	// Resolve path relative to this file first
	_, filePath, _, ok := runtime.Caller(0)
	var basePath string
	if ok {
		basePath = filepath.Dir(filePath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// Try multiple paths to find config.yaml
	possiblePaths := []string{}
	if basePath != "" {
		possiblePaths = append(possiblePaths, filepath.Join(basePath, "config.yaml"))
	}
	possiblePaths = append(possiblePaths,
		filepath.Join(cwd, "Internal", "utils", "config", "config.yaml"),
		"Internal/utils/config/config.yaml",
		"config.yaml",
	)

	var data []byte
	for _, path := range possiblePaths {
		data, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Global.BenchmarkSymbol == "" {
		c.Global.BenchmarkSymbol = "SPY"
	}
	if c.Global.LookbackDays == 0 {
		c.Global.LookbackDays = 250
	}
	if c.Global.MinHistoryBars == 0 {
		c.Global.MinHistoryBars = 50
	}
	if c.Regime.SMAPeriod == 0 {
		c.Regime.SMAPeriod = 20
	}
}

func (c *Config) GetProfile(profileName string) (*ProfileConfig, error) {
	profile, exists := c.Profiles[profileName]
	if !exists {
		return nil, fmt.Errorf("unknown scan profile %q", profileName)
	}
	if profile.Filter.RelVolumePeriod == 0 {
		profile.Filter.RelVolumePeriod = 20
	}
	if profile.Backtest.HorizonBars == 0 {
		profile.Backtest.HorizonBars = 3
	}
	return &profile, nil
}
