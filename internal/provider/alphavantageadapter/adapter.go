package alphavantageadapter

import (
	"context"

	"stockproxy/internal/provider"
	"stockproxy/internal/provider/alphavantage"
)

type Config struct {
	Name       string // display name, default: AlphaVantage
	OutputSize string // compact or full, default: full
}

// Client is the part of the Alpha Vantage client the adapter needs.
type Client interface {
	GetCompanyOverview(ctx context.Context, symbol string, opts ...alphavantage.AlphaVantageAPIClientOption) (map[string]any, error)
	GetTimeSeriesDailyAdjusted(ctx context.Context, symbol string, outputSize string, opts ...alphavantage.AlphaVantageAPIClientOption) (*alphavantage.TimeSeriesDaily, error)
}

// Adapter exposes an Alpha Vantage client as a provider.Provider.
type Adapter struct {
	cfg    Config
	client Client
}

func New(cfg Config, client Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "AlphaVantage"
	}
	if cfg.OutputSize == "" {
		cfg.OutputSize = alphavantage.OutputSizeFull
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Overview(ctx context.Context, symbol string) (provider.Profile, error) {
	body, err := a.client.GetCompanyOverview(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return provider.Profile(body), nil
}

// DailySeries returns nil when the payload carried no series object.
func (a *Adapter) DailySeries(ctx context.Context, symbol string) (provider.DailySeries, error) {
	ts, err := a.client.GetTimeSeriesDailyAdjusted(ctx, symbol, a.cfg.OutputSize)
	if err != nil {
		return nil, err
	}
	if ts == nil || ts.Entries == nil {
		return nil, nil
	}
	out := make(provider.DailySeries, 0, len(ts.Entries))
	for _, e := range ts.Entries {
		out = append(out, provider.SeriesEntry{Date: e.Date, Fields: e.Fields})
	}
	return out, nil
}
