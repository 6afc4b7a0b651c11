package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
)

const (
	// OutputSizeCompact returns the latest 100 data points.
	OutputSizeCompact = "compact"
	// OutputSizeFull returns the full-length history.
	OutputSizeFull = "full"

	timeSeriesDailyKey = "Time Series (Daily)"
	metaDataKey        = "Meta Data"
)

// DailyEntry is one dated record of the daily series, e.g.
// {"1. open": "185.0", "4. close": "186.2", "5. adjusted close": "185.9", ...}.
type DailyEntry struct {
	Date   string
	Fields map[string]string
}

// TimeSeriesDaily is a decoded TIME_SERIES_DAILY_ADJUSTED payload.
type TimeSeriesDaily struct {
	MetaData map[string]string
	// Entries keeps the order of the response document, newest first in
	// practice. It is nil when the payload has no time series object.
	Entries []DailyEntry
	// Messages holds any advisory or error text the API sent instead of
	// data, keyed by field name ("Note", "Information", "Error Message").
	Messages map[string]string
}

// GetTimeSeriesDailyAdjusted retrieves the daily adjusted series for symbol.
// The series object is read token by token because its key order is the only
// ordering information the API gives.
func (c *AlphaVantageAPIClient) GetTimeSeriesDailyAdjusted(ctx context.Context, symbol string, outputSize string, opts ...AlphaVantageAPIClientOption) (*TimeSeriesDaily, error) {
	override := c.with(opts)

	params := url.Values{
		"function": []string{"TIME_SERIES_DAILY_ADJUSTED"},
		"symbol":   []string{symbol},
	}
	if outputSize != "" {
		params.Set("outputsize", outputSize)
	}

	res, err := override.get(ctx, params)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	series, err := decodeTimeSeriesDaily(res.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding time series response: %w", err)
	}
	return series, nil
}

func decodeTimeSeriesDaily(r io.Reader) (*TimeSeriesDaily, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	out := &TimeSeriesDaily{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case timeSeriesDailyKey:
			entries, err := decodeEntries(dec)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out.Entries = entries

		case metaDataKey:
			var raw map[string]any
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			meta, err := stringFields(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out.MetaData = meta

		default:
			var raw any
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if s, ok := raw.(string); ok {
				if out.Messages == nil {
					out.Messages = map[string]string{}
				}
				out.Messages[key] = s
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeEntries reads {"2024-01-03": {...}, "2024-01-02": {...}} keeping key order.
func decodeEntries(dec *json.Decoder) ([]DailyEntry, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	entries := make([]DailyEntry, 0, 256)
	for dec.More() {
		date, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%s: %w", date, err)
		}
		fields, err := stringFields(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", date, err)
		}
		entries = append(entries, DailyEntry{Date: date, Fields: fields})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return entries, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

var errUnexpectedType = errors.New("unexpected type")

// stringFields flattens a decoded object whose values are strings or numbers.
func stringFields(raw map[string]any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case string:
			out[k] = v
		case json.Number:
			out[k] = v.String()
		default:
			return nil, fmt.Errorf("%s: %w: %T", k, errUnexpectedType, v)
		}
	}
	return out, nil
}
