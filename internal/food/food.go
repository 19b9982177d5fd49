// Package food wraps the OpenFoodFacts search API.
//
// Search results are normalized to per-100g figures; products without a
// name or a kcal value are skipped. An empty result set is a valid,
// non-error outcome; only transport and decoding failures are errors.
package food

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fitflow/fitflow/internal/models"
)

const defaultBaseURL = "https://world.openfoodfacts.org/cgi/search.pl"

// MaxResults caps the number of products requested per search.
const MaxResults = 5

// DefaultTimeout bounds a single food search.
const DefaultTimeout = 12 * time.Second

// Opts holds configuration options for the OpenFoodFacts client.
type Opts struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Option defines a configuration option for the OpenFoodFacts client.
type Option func(*Opts)

// WithBaseURL overrides the API endpoint (used in tests).
func WithBaseURL(base string) Option {
	return func(o *Opts) { o.BaseURL = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Opts) { o.HTTPClient = hc }
}

// Client searches the OpenFoodFacts product database.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenFoodFacts client. The public API requires no key.
func NewClient(opts ...Option) *Client {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: cfg.BaseURL, httpClient: cfg.HTTPClient}
}

type offProduct struct {
	ProductName string         `json:"product_name"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// Search returns up to MaxResults food items matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]models.FoodItem, error) {
	params := url.Values{}
	params.Set("search_terms", strings.TrimSpace(query))
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", fmt.Sprint(MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &models.ExternalServiceError{Service: "food search", Err: err}
	}
	req.Header.Set("User-Agent", "fitflow/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Food search request failed", "error", err, "query", query)
		return nil, &models.ExternalServiceError{Service: "food search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Food search returned non-OK status", "status", resp.StatusCode, "query", query)
		return nil, &models.ExternalServiceError{Service: "food search", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed offSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.Error("Food search decode failed", "error", err, "query", query)
		return nil, &models.ExternalServiceError{Service: "food search", Err: err}
	}

	items := make([]models.FoodItem, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}
		calories := nutrientValue(p.Nutriments, "energy-kcal_100g")
		if calories == 0 {
			continue
		}
		items = append(items, models.FoodItem{
			Name:            name,
			CaloriesPer100g: calories,
			Proteins:        nutrientValue(p.Nutriments, "proteins_100g"),
			Fats:            nutrientValue(p.Nutriments, "fat_100g"),
			Carbs:           nutrientValue(p.Nutriments, "carbohydrates_100g"),
		})
	}

	slog.Debug("Food search succeeded", "query", query, "matches", len(items))
	return items, nil
}

// nutrientValue reads a numeric nutriment; OpenFoodFacts serves both
// numbers and numeric strings.
func nutrientValue(n map[string]any, key string) float64 {
	switch v := n[key].(type) {
	case float64:
		return v
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}
