package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// GetCompanyOverview retrieves the OVERVIEW payload for symbol. The payload is
// a flat object such as {"Symbol": "IBM", "Name": "...", "PERatio": "22.1"}.
// An unknown symbol yields an empty object, and an exhausted quota yields an
// object carrying only a "Note" or "Information" message; both are returned
// as-is for the caller to judge.
func (c *AlphaVantageAPIClient) GetCompanyOverview(ctx context.Context, symbol string, opts ...AlphaVantageAPIClientOption) (map[string]any, error) {
	override := c.with(opts)

	res, err := override.get(ctx, url.Values{
		"function": []string{"OVERVIEW"},
		"symbol":   []string{symbol},
	})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var body map[string]any
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding overview response: %w", err)
	}
	return body, nil
}
