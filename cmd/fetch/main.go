package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockproxy/internal/config"
	"stockproxy/internal/httpx"
	"stockproxy/internal/lookup"
	"stockproxy/internal/mockdata"
	"stockproxy/internal/provider"
	"stockproxy/internal/provider/alphavantage"
	"stockproxy/internal/provider/alphavantageadapter"
)

type summary struct {
	Ticker  string               `json:"ticker"`
	Outcome string               `json:"outcome"`
	Name    any                  `json:"name,omitempty"`
	Points  int                  `json:"points"`
	First   *provider.PricePoint `json:"first,omitempty"`
	Last    *provider.PricePoint `json:"last,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func main() {
	var tickersCSV string
	var configPath string
	var timeout int

	flag.StringVar(&tickersCSV, "tickers", getenv("TICKERS", "AAPL,MSFT,NVDA"), "comma-separated tickers")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.IntVar(&timeout, "timeout", 60, "overall timeout seconds")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	tickers := splitCSV(tickersCSV)
	if len(tickers) == 0 {
		logger.Fatal("no tickers provided")
	}

	avClient, err := alphavantage.NewAlphaVantageAPIClient(
		cfg.AlphaVantage.APIKey,
		alphavantage.WithHTTPClient(httpx.New(cfg.AlphaVantage.CallTimeout())),
		alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
	)
	if err != nil {
		logger.Fatal("alpha vantage client", zap.Error(err))
	}
	dispatcher := lookup.New(
		mockdata.New(),
		alphavantageadapter.New(alphavantageadapter.Config{OutputSize: cfg.AlphaVantage.OutputSize}, avClient),
		lookup.WithCallTimeout(cfg.AlphaVantage.CallTimeout()),
		lookup.WithLogger(logger.Named("lookup")),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	results := make([]summary, len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	// the free Alpha Vantage tier allows very few calls per minute
	g.SetLimit(2)
	for i, ticker := range tickers {
		g.Go(func() error {
			results[i] = summarize(gctx, dispatcher, ticker)
			return nil
		})
	}
	_ = g.Wait()

	b, _ := json.MarshalIndent(struct {
		Results []summary `json:"results"`
	}{Results: results}, "", "  ")
	fmt.Println(string(b))
}

func summarize(ctx context.Context, d *lookup.Dispatcher, ticker string) summary {
	s := summary{Ticker: ticker}
	data, err := d.Lookup(ctx, ticker)
	s.Outcome = lookup.Classify(err).String()
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.Name = data.Profile["Name"]
	s.Points = len(data.Historical)
	if n := len(data.Historical); n > 0 {
		s.First = &data.Historical[0]
		s.Last = &data.Historical[n-1]
	}
	return s
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
