package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultGeckoBaseURL is the public GeckoTerminal API host.
const DefaultGeckoBaseURL = "https://api.geckoterminal.com"

// GeckoFetcher implements Fetcher using the GeckoTerminal pools endpoint.
type GeckoFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewGeckoFetcher creates a new fetcher with optional proxy support.
func NewGeckoFetcher(baseURL, proxyURL string, timeout time.Duration) *GeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultGeckoBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GeckoFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *GeckoFetcher) Name() string { return "geckoterminal" }

// geckoPool is the subset of the pool response we read.
type geckoPool struct {
	Data struct {
		Attributes struct {
			BaseTokenPriceUSD json.RawMessage `json:"base_token_price_usd"`
		} `json:"attributes"`
	} `json:"data"`
}

func (f *GeckoFetcher) FetchPrice(ctx context.Context, chain, pool string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v2/networks/%s/pools/%s",
		f.BaseURL, url.PathEscape(chain), url.PathEscape(pool))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: read body: %v", ErrRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d, body: %s", ErrRequest, resp.StatusCode, truncate(body, 200))
	}

	var payload geckoPool
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	price, err := parsePrice(payload.Data.Attributes.BaseTokenPriceUSD)
	if err != nil {
		return 0, err
	}
	return checkPrice(price)
}

// parsePrice accepts the price as a JSON string or number. A missing or null
// field is reported as ErrNoPrice.
func parsePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("%w: base_token_price_usd missing", ErrNoPrice)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return 0, fmt.Errorf("%w: base_token_price_usd empty", ErrNoPrice)
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: price %q: %v", ErrMalformed, s, err)
		}
		return p, nil
	}
	var p float64
	if err := json.Unmarshal(raw, &p); err != nil {
		return 0, fmt.Errorf("%w: price %s: %v", ErrMalformed, raw, err)
	}
	return p, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
