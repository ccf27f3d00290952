package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	datafeed "github.com/mox0716/MarketScanner/Internal/database"
	"github.com/mox0716/MarketScanner/Internal/notify"
	"github.com/mox0716/MarketScanner/Internal/utils/config"
	"github.com/mox0716/MarketScanner/Internal/utils/scanner"
)

func main() {
	profileName := flag.String("profile", "default", "scan profile from config.yaml")
	tickerFile := flag.String("tickers", "tickers.txt", "ticker list file, one symbol per line")
	allAssets := flag.Bool("all-assets", false, "scan every active US equity instead of the ticker file")
	noEmail := flag.Bool("no-email", false, "print the report but skip email delivery")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	profile, err := cfg.GetProfile(*profileName)
	if err != nil {
		log.Fatalln(err)
	}

	client := datafeed.NewClient(
		os.Getenv("ALPACA_API_KEY"),
		os.Getenv("ALPACA_API_SECRET"),
		os.Getenv("ALPHAVANTAGE_API_KEY"),
	)

	var symbols []string
	if *allAssets {
		symbols, err = client.TradableSymbols()
		if err != nil {
			log.Fatalf("Failed to fetch asset universe: %v", err)
		}
		log.Printf("Fetched %d tradeable assets", len(symbols))
	} else {
		symbols, err = scanner.LoadTickerFile(*tickerFile)
		if err != nil {
			log.Fatalf("Failed to read ticker file: %v", err)
		}
		log.Printf("Loaded %d tickers from %s", len(symbols), *tickerFile)
	}

	sc := scanner.New(client, cfg, profile)
	summary := sc.Run(symbols)

	label := cfg.Global.ReportLabel
	if repo := os.Getenv("REPORT_LABEL"); repo != "" {
		label = repo
	}

	textReport := notify.RenderText(label, summary)
	if cfg.Notifications.Channels.Console {
		fmt.Println(textReport)
	}

	if cfg.Notifications.Channels.Email && !*noEmail {
		htmlReport, err := notify.RenderHTML(label, summary)
		if err != nil {
			log.Printf("Failed to render HTML report: %v", err)
			return
		}
		emailCfg := notify.EmailConfigFromEnv()
		if err := notify.SendReport(emailCfg, notify.Subject(label, summary), textReport, htmlReport); err != nil {
			log.Printf("Email delivery failed: %v", err)
			return
		}
		log.Printf("Report emailed to %s", emailCfg.To)
	}
}
