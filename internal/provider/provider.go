package provider

import (
	"context"
)

// Profile is a company overview as delivered by its source. Values are passed
// through untouched; no numeric parsing is done on them.
type Profile map[string]any

// PricePoint is one daily close.
type PricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// StockData is the response unit served for a ticker.
type StockData struct {
	Profile    Profile      `json:"profile"`
	Historical []PricePoint `json:"historical"`
}

// SeriesEntry is one dated record of a raw daily time series, e.g.
// {"1. open": "10.0", "4. close": "12.0", ...}.
type SeriesEntry struct {
	Date   string
	Fields map[string]string
}

// DailySeries is a raw daily time series in the order the provider sent it.
// A nil DailySeries means the payload carried no time series at all.
type DailySeries []SeriesEntry

// Provider is an upstream source of profiles and daily series.
//
//go:generate mockgen -package=lookup_test -destination=../lookup/mock_provider_test.go -source=provider.go Provider
type Provider interface {
	Name() string
	Overview(ctx context.Context, symbol string) (Profile, error)
	DailySeries(ctx context.Context, symbol string) (DailySeries, error)
}
