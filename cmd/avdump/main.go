package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"stockproxy/internal/config"
	"stockproxy/internal/httpx"
)

// dumps lists the payloads written per ticker: file suffix to query function.
var dumps = []struct {
	suffix   string
	function string
}{
	{suffix: "overview", function: "OVERVIEW"},
	{suffix: "time_series_daily_adjusted", function: "TIME_SERIES_DAILY_ADJUSTED"},
}

func main() {
	var (
		ticker  string
		outDir  string
		cfgPath string
	)
	flag.StringVar(&ticker, "ticker", "IBM", "ticker to dump")
	flag.StringVar(&outDir, "out-dir", ".", "directory for the raw payload files")
	flag.StringVar(&cfgPath, "config", "", "path to config.json (optional)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.AlphaVantage.APIKey == "" {
		logger.Fatal("ALPHA_VANTAGE_API_KEY missing (set in config.json or env)")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Fatal("create out dir", zap.Error(err))
	}

	hc := httpx.New(cfg.AlphaVantage.CallTimeout())
	for _, d := range dumps {
		params := url.Values{
			"function": []string{d.function},
			"symbol":   []string{ticker},
			"apikey":   []string{cfg.AlphaVantage.APIKey},
		}
		if d.function == "TIME_SERIES_DAILY_ADJUSTED" {
			params.Set("outputsize", cfg.AlphaVantage.OutputSize)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.AlphaVantage.CallTimeout())
		body, err := fetchRaw(ctx, hc, cfg.AlphaVantage.BaseURL, params)
		cancel()
		if err != nil {
			logger.Fatal("fetch", zap.String("function", d.function), zap.Error(err))
		}

		path := filepath.Join(outDir, fmt.Sprintf("%s_%s.json", strings.ToUpper(ticker), d.suffix))
		if err := os.WriteFile(path, body, 0o644); err != nil {
			logger.Fatal("write", zap.String("path", path), zap.Error(err))
		}
		logger.Info("wrote payload", zap.String("path", path), zap.Int("bytes", len(body)))

		// stay under the per-minute quota of the free tier
		time.Sleep(time.Second)
	}
}

func fetchRaw(ctx context.Context, hc *httpx.Client, baseURL string, params url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/query?%s", strings.TrimRight(baseURL, "/"), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
