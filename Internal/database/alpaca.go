package datafeed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/mox0716/MarketScanner/Internal/types"
)

type Bar = types.Bar

// Client talks to the market-data provider. Credentials are injected at the
// process boundary; nothing in here reads the environment.
type Client struct {
	APIKey         string
	SecretKey      string
	OverviewAPIKey string
	HTTPClient     *http.Client

	trading *alpaca.Client
}

func NewClient(apiKey, secretKey, overviewKey string) *Client {
	return &Client{
		APIKey:         apiKey,
		SecretKey:      secretKey,
		OverviewAPIKey: overviewKey,
		HTTPClient:     &http.Client{Timeout: 30 * time.Second},
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: secretKey,
			BaseURL:   "https://paper-api.alpaca.markets",
		}),
	}
}

// DailyBars fetches up to `limit` daily bars for a symbol, oldest first.
// The start date is padded for weekends and holidays so a 250-bar request
// reaches far enough back in calendar time.
func (c *Client) DailyBars(symbol string, limit int) ([]Bar, error) {
	calendarDays := limit*7/5 + 10
	start := time.Now().UTC().AddDate(0, 0, -calendarDays)

	apiURL := fmt.Sprintf(
		"https://data.alpaca.markets/v2/stocks/%s/bars?timeframe=1Day&limit=%d&start=%s&adjustment=split",
		url.PathEscape(symbol), limit, start.Format(time.RFC3339),
	)

	req, err := http.NewRequest("GET", apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("APCA-API-KEY-ID", c.APIKey)
	req.Header.Set("APCA-API-SECRET-KEY", c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bars request for %s returned status %d", symbol, resp.StatusCode)
	}

	var r struct {
		Bars []Bar `json:"bars"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding bars for %s: %v", symbol, err)
	}

	// The feed is normally chronological already; sort to be sure, the
	// indicator math depends on oldest-first ordering.
	sort.Slice(r.Bars, func(i, j int) bool {
		return r.Bars[i].Timestamp < r.Bars[j].Timestamp
	})

	return r.Bars, nil
}

// TradableSymbols lists active US equities from the trading API, for runs
// that scan the whole exchange universe instead of a ticker file.
func (c *Client) TradableSymbols() ([]string, error) {
	assets, err := c.trading.GetAssets(alpaca.GetAssetsRequest{
		Status: "active",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %v", err)
	}

	symbols := make([]string, 0, len(assets))
	for _, asset := range assets {
		if asset.Class == "us_equity" && asset.Tradable {
			symbols = append(symbols, asset.Symbol)
		}
	}
	return symbols, nil
}
