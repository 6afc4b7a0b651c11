package alphavantage_test

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	alphavantage "stockproxy/internal/provider/alphavantage"
)

func TestGetTimeSeriesDailyAdjusted(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "test-key", req.URL.Query().Get("apikey"))
			require.Equal(t, "TIME_SERIES_DAILY_ADJUSTED", req.URL.Query().Get("function"))
			require.Equal(t, "XYZ", req.URL.Query().Get("symbol"))
			require.Equal(t, "full", req.URL.Query().Get("outputsize"))

			return rawResponse(`{"Time Series (Daily)": {
				"2024-01-03": {"1. open": "11.5", "4. close": "12"},
				"2024-01-02": {"1. open": "10.5", "4. close": "11"},
				"2024-01-01": {"1. open": "9.5", "4. close": "10"}
			}}`), nil
		}).
		Times(1)

	// Arrange: setup a new client
	client, err := alphavantage.NewAlphaVantageAPIClient("test-key", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	series, err := client.GetTimeSeriesDailyAdjusted(t.Context(), "XYZ", alphavantage.OutputSizeFull)
	require.NoError(t, err)

	// Assert: entries come back in document order
	require.Len(t, series.Entries, 3)
	require.Equal(t, "2024-01-03", series.Entries[0].Date)
	require.Equal(t, "2024-01-02", series.Entries[1].Date)
	require.Equal(t, "2024-01-01", series.Entries[2].Date)
	require.Equal(t, "12", series.Entries[0].Fields["4. close"])
	require.Nil(t, series.MetaData)
	require.Nil(t, series.Messages)
}

func TestGetTimeSeriesDailyAdjusted_OmitsEmptyOutputSize(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.False(t, req.URL.Query().Has("outputsize"))
			return rawResponse(`{"Time Series (Daily)": {}}`), nil
		}).
		Times(1)

	client, err := alphavantage.NewAlphaVantageAPIClient("test-key", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	series, err := client.GetTimeSeriesDailyAdjusted(t.Context(), "XYZ", "")
	require.NoError(t, err)

	// Assert: a present but empty object is distinguishable from a missing one
	require.NotNil(t, series.Entries)
	require.Empty(t, series.Entries)
}

func TestGetTimeSeriesDailyAdjusted_ErrorMessagePayload(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(rawResponse(`{"Error Message": "Invalid API call."}`), nil).
		Times(1)

	client, err := alphavantage.NewAlphaVantageAPIClient("test-key", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	series, err := client.GetTimeSeriesDailyAdjusted(t.Context(), "NOPE", alphavantage.OutputSizeFull)
	require.NoError(t, err)

	// Assert: no series, message retained
	require.Nil(t, series.Entries)
	require.Equal(t, "Invalid API call.", series.Messages["Error Message"])
}

func TestGetTimeSeriesDailyAdjusted_NumericFields(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(rawResponse(`{"Time Series (Daily)": {"2024-01-01": {"4. close": 10.25}}}`), nil).
		Times(1)

	client, err := alphavantage.NewAlphaVantageAPIClient("test-key", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	series, err := client.GetTimeSeriesDailyAdjusted(t.Context(), "XYZ", alphavantage.OutputSizeFull)
	require.NoError(t, err)
	require.Equal(t, "10.25", series.Entries[0].Fields["4. close"])
}

func TestGetTimeSeriesDailyAdjusted_ErrPerformingRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return nil, fmt.Errorf("error")
		}).
		Times(1)

	client, err := alphavantage.NewAlphaVantageAPIClient("", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	series, err := client.GetTimeSeriesDailyAdjusted(t.Context(), "XYZ", alphavantage.OutputSizeFull)
	require.Error(t, err)
	require.Nil(t, series)
}

func TestGetTimeSeriesDailyAdjusted_ErrDecodingResponse(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"not json":          "invalid json",
		"not an object":     `["2024-01-01"]`,
		"series not object": `{"Time Series (Daily)": ["2024-01-01"]}`,
		"nested field":      `{"Time Series (Daily)": {"2024-01-01": {"4. close": {"v": 1}}}}`,
		"truncated":         `{"Time Series (Daily)": {"2024-01-01": {"4. close": "1"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().Do(gomock.Any()).Return(rawResponse(body), nil).Times(1)

			client, err := alphavantage.NewAlphaVantageAPIClient("", alphavantage.WithHTTPClient(httpClient))
			require.NoError(t, err)

			series, err := client.GetTimeSeriesDailyAdjusted(t.Context(), "XYZ", alphavantage.OutputSizeFull)
			require.ErrorContains(t, err, "decoding time series response")
			require.Nil(t, series)
		})
	}
}

func TestGetTimeSeriesDailyAdjusted_WithFixture(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Load the fixture data
	fixtureData, err := os.OpenFile("fixtures/time_series_daily_adjusted.json", os.O_RDONLY, 0600)
	require.NoError(t, err)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "IBM", req.URL.Query().Get("symbol"))

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       fixtureData,
			}, nil
		}).
		Times(1)

	// Arrange: setup a new client
	client, err := alphavantage.NewAlphaVantageAPIClient("test-key", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	series, err := client.GetTimeSeriesDailyAdjusted(t.Context(), "IBM", alphavantage.OutputSizeFull)
	require.NoError(t, err)

	// Assert: meta data is decoded
	require.Equal(t, "IBM", series.MetaData["2. Symbol"])

	// Assert: newest first, as sent
	require.Len(t, series.Entries, 5)
	require.Equal(t, "2024-01-08", series.Entries[0].Date)
	require.Equal(t, "2024-01-02", series.Entries[4].Date)
	require.Equal(t, "161.1400", series.Entries[0].Fields["4. close"])
	require.Equal(t, "157.3933", series.Entries[4].Fields["5. adjusted close"])
	require.Len(t, series.Entries[0].Fields, 8)
}
