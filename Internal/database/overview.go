package datafeed

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mox0716/MarketScanner/Internal/types"
)

type overviewResponse struct {
	Symbol       string `json:"Symbol"`
	MarketCapStr string `json:"MarketCapitalization"`
	SharesFloat  string `json:"SharesFloat"`
}

// AssetSnapshot fetches company fundamentals for the eligibility gates. Only
// called when a profile sets a market-cap floor, so bar-only profiles work
// without an overview API key.
func (c *Client) AssetSnapshot(symbol string) (*types.AssetSnapshot, error) {
	if c.OverviewAPIKey == "" {
		return nil, fmt.Errorf("no overview API key configured")
	}

	apiURL := fmt.Sprintf("https://www.alphavantage.co/query?function=OVERVIEW&symbol=%s&apikey=%s",
		symbol, c.OverviewAPIKey)

	resp, err := c.HTTPClient.Get(apiURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var overview overviewResponse
	if err := json.Unmarshal(body, &overview); err != nil {
		return nil, fmt.Errorf("error parsing overview response: %v", err)
	}

	snapshot := &types.AssetSnapshot{Symbol: symbol}
	if cap, err := strconv.ParseFloat(overview.MarketCapStr, 64); err == nil {
		snapshot.MarketCap = cap
	}
	if flt, err := strconv.ParseFloat(overview.SharesFloat, 64); err == nil {
		snapshot.FloatShares = flt
	}

	return snapshot, nil
}
