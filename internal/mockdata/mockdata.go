// Package mockdata holds the built-in profiles and price histories served for
// a few popular tickers without calling any upstream provider.
package mockdata

import (
	"maps"
	"slices"
	"time"

	"stockproxy/internal/provider"
)

// HistoryLength is the number of daily points per ticker, about five years
// of trading days.
const HistoryLength = 1260

const dateLayout = "2006-01-02"

// firstDate is the first trading day of every history.
var firstDate = time.Date(2019, time.January, 2, 0, 0, 0, 0, time.UTC)

type seed struct {
	symbol  string
	profile provider.Profile
	base    float64 // close of the first point
	slope   float64 // drift per point
	amp     float64 // height of the 50-point sawtooth
}

var seeds = []seed{
	{
		symbol: "AAPL",
		profile: provider.Profile{
			"Symbol":               "AAPL",
			"Name":                 "Apple Inc",
			"Description":          "Apple Inc. designs, manufactures, and markets smartphones, personal computers, tablets, wearables, and accessories worldwide.",
			"Exchange":             "NASDAQ",
			"Currency":             "USD",
			"Sector":               "Technology",
			"MarketCapitalization": "3200000000000",
			"PERatio":              "32.5",
			"52WeekHigh":           "220.50",
		},
		base: 150, slope: 0.05, amp: 20,
	},
	{
		symbol: "MSFT",
		profile: provider.Profile{
			"Symbol":               "MSFT",
			"Name":                 "Microsoft Corporation",
			"Description":          "Microsoft Corporation develops, licenses, and supports software, services, devices, and solutions worldwide.",
			"Exchange":             "NASDAQ",
			"Currency":             "USD",
			"Sector":               "Technology",
			"MarketCapitalization": "3100000000000",
			"PERatio":              "35.8",
			"52WeekHigh":           "430.82",
		},
		base: 300, slope: 0.1, amp: 30,
	},
	{
		symbol: "NVDA",
		profile: provider.Profile{
			"Symbol":               "NVDA",
			"Name":                 "NVIDIA Corporation",
			"Description":          "NVIDIA Corporation provides graphics, and compute and networking solutions in the United States, Taiwan, China, and internationally.",
			"Exchange":             "NASDAQ",
			"Currency":             "USD",
			"Sector":               "Technology",
			"MarketCapitalization": "2900000000000",
			"PERatio":              "70.2",
			"52WeekHigh":           "974.00",
		},
		base: 400, slope: 0.4, amp: 80,
	},
}

// Table maps upper-case ticker symbols to their stock data. It is read-only
// once built.
type Table struct {
	entries map[string]provider.StockData
}

// New builds the table. Output is identical on every call.
func New() *Table {
	t := &Table{entries: make(map[string]provider.StockData, len(seeds))}
	for _, s := range seeds {
		t.entries[s.symbol] = provider.StockData{
			Profile:    s.profile,
			Historical: history(s),
		}
	}
	return t
}

// Get returns a copy of the entry for symbol. Symbol must already be upper case.
func (t *Table) Get(symbol string) (provider.StockData, bool) {
	e, ok := t.entries[symbol]
	if !ok {
		return provider.StockData{}, false
	}
	return provider.StockData{
		Profile:    maps.Clone(e.Profile),
		Historical: slices.Clone(e.Historical),
	}, true
}

// Symbols returns the covered tickers in sorted order.
func (t *Table) Symbols() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

func history(s seed) []provider.PricePoint {
	points := make([]provider.PricePoint, 0, HistoryLength)
	day := firstDate
	for i := 0; i < HistoryLength; i++ {
		points = append(points, provider.PricePoint{
			Date:  day.Format(dateLayout),
			Close: s.base + float64(i)*s.slope + s.amp*float64(i%50)/50,
		})
		day = nextWeekday(day)
	}
	return points
}

func nextWeekday(d time.Time) time.Time {
	d = d.AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
