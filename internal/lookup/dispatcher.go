// Package lookup resolves a ticker into stock data, serving built-in mock data
// when it has an entry and falling back to the upstream provider otherwise.
package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"stockproxy/internal/provider"
)

// DefaultCallTimeout bounds each provider call when no timeout is configured.
const DefaultCallTimeout = 10 * time.Second

// MockTable is the read side of the built-in data table.
type MockTable interface {
	Get(symbol string) (provider.StockData, bool)
}

// Dispatcher resolves lookups. It holds no mutable state and is safe for
// concurrent use.
type Dispatcher struct {
	table       MockTable
	provider    provider.Provider
	callTimeout time.Duration
	logger      *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCallTimeout bounds each of the two provider calls separately.
func WithCallTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.callTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(disp *Dispatcher) {
		if logger != nil {
			disp.logger = logger
		}
	}
}

// New creates a Dispatcher. p may be nil, in which case every mock miss fails
// as an upstream error.
func New(table MockTable, p provider.Provider, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:       table,
		provider:    p,
		callTimeout: DefaultCallTimeout,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var errNoProvider = errors.New("no upstream provider configured")

// Lookup resolves ticker. Mock entries are matched case-insensitively and never
// reach the provider. On a miss the provider is asked for the overview and then
// the daily series, both with ticker exactly as given. Errors are either
// *NotFoundError or *UpstreamError; see Classify.
func (d *Dispatcher) Lookup(ctx context.Context, ticker string) (provider.StockData, error) {
	upper := strings.ToUpper(ticker)
	log := d.logger.With(zap.String("ticker", ticker))

	if data, ok := d.table.Get(upper); ok {
		log.Debug("serving mock data")
		return data, nil
	}

	if d.provider == nil {
		return provider.StockData{}, &UpstreamError{Op: "overview", Err: errNoProvider}
	}
	log = log.With(zap.String("provider", d.provider.Name()))

	profile, err := d.overview(ctx, ticker)
	if err != nil {
		log.Error("overview request failed", zap.Error(err))
		return provider.StockData{}, &UpstreamError{Op: "overview", Err: err}
	}
	if !usableProfile(profile) {
		log.Warn("no usable profile", zap.Int("fields", len(profile)))
		return provider.StockData{}, &NotFoundError{Ticker: ticker, Err: ErrProfileNotFound}
	}

	series, err := d.dailySeries(ctx, ticker)
	if err != nil {
		log.Error("daily series request failed", zap.Error(err))
		return provider.StockData{}, &UpstreamError{Op: "daily series", Err: err}
	}
	if len(series) == 0 {
		log.Warn("no daily series")
		return provider.StockData{}, &NotFoundError{Ticker: ticker, Err: ErrHistoricalNotFound}
	}

	points, err := NormalizeSeries(series)
	if err != nil {
		log.Error("daily series malformed", zap.Error(err))
		return provider.StockData{}, &UpstreamError{Op: "normalize", Err: err}
	}

	log.Debug("served from provider", zap.Int("points", len(points)))
	return provider.StockData{Profile: profile, Historical: points}, nil
}

func (d *Dispatcher) overview(ctx context.Context, ticker string) (provider.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()
	return d.provider.Overview(ctx, ticker)
}

func (d *Dispatcher) dailySeries(ctx context.Context, ticker string) (provider.DailySeries, error) {
	ctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()
	return d.provider.DailySeries(ctx, ticker)
}
