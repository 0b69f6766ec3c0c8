// This file contains a Massive-backed Provider implementation that
// retrieves daily aggregates via Massive HTTP APIs.
//
// Design notes:
//   - Uses raw HTTP calls instead of the official Massive SDK
//   - Falls back to the secondary provider when a request fails
//   - Logging is verbose at Debug/Trace levels for diagnostics
package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// massiveDataProvider implements the Provider interface using Massive APIs.
type massiveDataProvider struct {
	// APIKey used for authenticating requests with Massive.
	APIKey string

	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint for Massive APIs.
	BaseURL string

	// secondary is an optional fallback provider.
	secondary Provider
}

// massiveAggsResp models the daily aggregates response.
type massiveAggsResp struct {
	Results []struct {
		Time  int64   `json:"t"`
		Open  float64 `json:"o"`
		High  float64 `json:"h"`
		Low   float64 `json:"l"`
		Close float64 `json:"c"`
		Vol   float64 `json:"v"`
	} `json:"results"`
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

// NewMassiveDataProvider constructs a Massive-backed data provider with a
// pooled HTTP client. The secondary provider, when non-nil, serves any
// request the API cannot.
func NewMassiveDataProvider(apiKey string, secondary Provider) Provider {
	logger.Infof("initializing Massive data provider")

	return &massiveDataProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				DisableCompression:    false, // must be false to enable gzip auto-decompression
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL:   "https://api.massive.com",
		secondary: secondary,
	}
}

// Secondary returns the configured secondary Provider, if any.
func (massiveDataProv *massiveDataProvider) Secondary() Provider {
	return massiveDataProv.secondary
}

// GetDailyBars fetches daily aggregates for the underlying over [from, to].
// On failure it delegates to the secondary provider when one is configured.
func (massiveDataProv *massiveDataProvider) GetDailyBars(underlying string, from, to time.Time) ([]Bar, error) {
	logger.Debugf(
		"daily bars request: %s %s..%s",
		underlying, from.Format("2006-01-02"), to.Format("2006-01-02"),
	)

	endpoint := fmt.Sprintf(
		"%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=50000&apiKey=%s",
		massiveDataProv.BaseURL,
		url.PathEscape(underlying),
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
		url.QueryEscape(massiveDataProv.APIKey),
	)

	bars, err := massiveDataProv.fetchBars(endpoint)
	if err != nil {
		logger.Errorf("massive daily bars failed: %v", err)
		if massiveDataProv.secondary != nil {
			logger.Tracef("delegating daily bars to secondary provider")
			return massiveDataProv.secondary.GetDailyBars(underlying, from, to)
		}
		return nil, err
	}
	return bars, nil
}

func (massiveDataProv *massiveDataProvider) fetchBars(endpoint string) ([]Bar, error) {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := massiveDataProv.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("massive aggs status %d", resp.StatusCode)
	}

	var body massiveAggsResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]Bar, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, Bar{
			Date: time.UnixMilli(r.Time).UTC(),
			Open: r.Open, High: r.High, Low: r.Low, Close: r.Close, Vol: r.Vol,
		})
	}
	logger.Tracef("massive aggs returned %d bars request_id=%s", len(out), body.RequestID)
	return out, nil
}
