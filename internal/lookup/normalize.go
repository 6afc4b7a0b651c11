package lookup

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"stockproxy/internal/provider"
)

// CloseField is the per-date field holding the closing price.
const CloseField = "4. close"

// advisoryFields mark an overview sent in place of data, e.g. when the call
// quota is exhausted.
var advisoryFields = []string{"Note", "Information"}

// usableProfile reports whether an overview carries company data.
func usableProfile(p provider.Profile) bool {
	if len(p) == 0 {
		return false
	}
	for _, f := range advisoryFields {
		if _, ok := p[f]; ok {
			return false
		}
	}
	sym, ok := p["Symbol"].(string)
	return ok && sym != ""
}

// NormalizeSeries extracts the close of every entry and reverses the provider
// order, which is newest first, into ascending dates.
func NormalizeSeries(series provider.DailySeries) ([]provider.PricePoint, error) {
	points := make([]provider.PricePoint, 0, len(series))
	for _, e := range series {
		raw, ok := e.Fields[CloseField]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", e.Date, CloseField)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", e.Date, CloseField, err)
		}
		points = append(points, provider.PricePoint{Date: e.Date, Close: v})
	}
	slices.Reverse(points)
	return points, nil
}
