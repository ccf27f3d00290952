package internal

import (
	"net/http"
	"sync"
	"time"

	"github.com/mox0716/MarketScanner/Internal/utils/scanner"
)

// API serves scan results over HTTP. The latest summary is held in memory
// only; there is no persistence between process restarts.
type API struct {
	Scanner    *scanner.Scanner
	TickerFile string
	JWTManager *JWTManager

	mu       sync.Mutex
	running  bool
	latest   *scanner.Summary
	lastScan time.Time
}

func (api *API) HandleRunScan(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	if api.running {
		api.mu.Unlock()
		WriteError(w, http.StatusConflict, "A scan is already running")
		return
	}
	api.running = true
	api.mu.Unlock()

	defer func() {
		api.mu.Lock()
		api.running = false
		api.mu.Unlock()
	}()

	symbols, err := scanner.LoadTickerFile(api.TickerFile)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to read ticker file: "+err.Error())
		return
	}

	summary := api.Scanner.Run(symbols)

	api.mu.Lock()
	api.latest = &summary
	api.lastScan = time.Now()
	api.mu.Unlock()

	WriteJSON(w, http.StatusOK, summary)
}

func (api *API) HandleLatestResults(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	latest := api.latest
	lastScan := api.lastScan
	api.mu.Unlock()

	if latest == nil {
		WriteError(w, http.StatusNotFound, "No scan has completed yet")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"last_scan": lastScan,
		"summary":   latest,
	})
}

func (api *API) HandleScanStatus(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"running":    api.running,
		"last_scan":  api.lastScan,
		"has_result": api.latest != nil,
	})
}
