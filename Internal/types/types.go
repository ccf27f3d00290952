package types

type Bar struct {
	Timestamp string  `json:"t"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}

// AssetSnapshot carries the fundamentals used by the eligibility gates,
// fetched from the company overview endpoint.
type AssetSnapshot struct {
	Symbol      string
	MarketCap   float64
	FloatShares float64
}

// Candidate is one qualified setup from a scan pass. Price levels are
// pre-rounded to cents.
type Candidate struct {
	Symbol      string  `json:"ticker"`
	Price       float64 `json:"price"`
	StopLoss    float64 `json:"stop_loss"`
	TargetPrice float64 `json:"target_price"`
	ADX         float64 `json:"adx_strength"`
	RelVolume   float64 `json:"rel_vol"`
	WinRate     float64 `json:"win_rate_3d"`
	ExpReturn   float64 `json:"exp_return_3d"`
	Signals     int     `json:"hist_signals"`
}
