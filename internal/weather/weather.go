// Package weather wraps the OpenWeather API for ambient temperature lookups.
//
// The session manager consumes it through the narrow TemperatureProvider
// interface defined in the flow package; every failure mode (transport,
// non-200 status, missing field) surfaces as models.ExternalServiceError.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/fitflow/fitflow/internal/models"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// DefaultTimeout bounds a single temperature lookup.
const DefaultTimeout = 10 * time.Second

// Opts holds configuration options for the OpenWeather client.
type Opts struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Option defines a configuration option for the OpenWeather client.
type Option func(*Opts)

// WithAPIKey sets the OpenWeather API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithBaseURL overrides the API endpoint (used in tests).
func WithBaseURL(base string) Option {
	return func(o *Opts) { o.BaseURL = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Opts) { o.HTTPClient = hc }
}

// Client looks up current ambient temperature by city name.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenWeather client. The API key falls back to the
// WEATHER_API_KEY environment variable when not provided via options.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("WEATHER_API_KEY")
	}
	slog.Debug("Weather client config loaded", "APIKey_set", cfg.APIKey != "", "BaseURL_set", cfg.BaseURL != "")
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("weather API key must be provided")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{apiKey: cfg.APIKey, baseURL: cfg.BaseURL, httpClient: cfg.HTTPClient}, nil
}

type weatherResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// Temperature returns the current temperature in °C for the given city.
func (c *Client) Temperature(ctx context.Context, city string) (float64, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, &models.ExternalServiceError{Service: "weather", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Weather lookup request failed", "error", err, "city", city)
		return 0, &models.ExternalServiceError{Service: "weather", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Weather lookup returned non-OK status", "status", resp.StatusCode, "city", city)
		return 0, &models.ExternalServiceError{Service: "weather", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Error("Weather lookup decode failed", "error", err, "city", city)
		return 0, &models.ExternalServiceError{Service: "weather", Err: err}
	}
	if parsed.Main.Temp == nil {
		slog.Error("Weather lookup response missing temperature field", "city", city)
		return 0, &models.ExternalServiceError{Service: "weather", Err: fmt.Errorf("response missing main.temp")}
	}

	slog.Debug("Weather lookup succeeded", "city", city, "temp_c", *parsed.Main.Temp)
	return *parsed.Main.Temp, nil
}
