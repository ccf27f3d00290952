package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	datafeed "github.com/mox0716/MarketScanner/Internal/database"
	"github.com/mox0716/MarketScanner/Internal/utils/config"
	"github.com/mox0716/MarketScanner/Internal/utils/scanner"
	"github.com/mox0716/MarketScanner/cmd/api/internal"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../../.env")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	profileName := os.Getenv("SCAN_PROFILE")
	if profileName == "" {
		profileName = "default"
	}
	profile, err := cfg.GetProfile(profileName)
	if err != nil {
		log.Fatalln(err)
	}

	tickerFile := os.Getenv("TICKER_FILE")
	if tickerFile == "" {
		tickerFile = "tickers.txt"
	}

	client := datafeed.NewClient(
		os.Getenv("ALPACA_API_KEY"),
		os.Getenv("ALPACA_API_SECRET"),
		os.Getenv("ALPHAVANTAGE_API_KEY"),
	)

	apiServer := &internal.API{
		Scanner:    scanner.New(client, cfg, profile),
		TickerFile: tickerFile,
		JWTManager: internal.NewJWTManager(),
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(internal.CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    "healthy",
		})
	})

	// Public routes
	r.Post("/api/token", apiServer.HandleGenerateToken)

	// Scan routes
	r.Group(func(r chi.Router) {
		r.Use(internal.JWTAuthMiddleware(apiServer.JWTManager))
		r.Post("/api/scan", apiServer.HandleRunScan)
		r.Get("/api/scan/latest", apiServer.HandleLatestResults)
		r.Get("/api/scan/status", apiServer.HandleScanStatus)
	})

	log.Println("Starting API server on :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatal(err)
	}
}
