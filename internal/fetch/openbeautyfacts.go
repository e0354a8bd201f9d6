// Package fetch contains the external data source clients behind analysis
// Tier 3: product metadata by barcode and hazard codes by ingredient name.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
)

// DefaultOBFBaseURL is the production Open Beauty Facts API endpoint.
const DefaultOBFBaseURL = "https://world.openbeautyfacts.org"

// OpenBeautyFactsClient resolves barcodes to product metadata via the Open
// Beauty Facts read API.
type OpenBeautyFactsClient struct {
	baseURL string
	client  *http.Client
}

var _ contract.ProductFetcher = &OpenBeautyFactsClient{} // Compile-time check

// NewOpenBeautyFactsClient returns a client against baseURL. An empty baseURL
// selects the production endpoint.
func NewOpenBeautyFactsClient(baseURL string, timeout time.Duration) *OpenBeautyFactsClient {
	if baseURL == "" {
		baseURL = DefaultOBFBaseURL
	}
	if timeout <= 0 {
		timeout = contract.DefaultFetchTimeout
	}
	return &OpenBeautyFactsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// obfResponse mirrors the subset of the product payload we consume.
type obfResponse struct {
	Status  int    `json:"status"`
	Product struct {
		ProductName     string `json:"product_name"`
		Brands          string `json:"brands"`
		IngredientsText string `json:"ingredients_text"`
		Ingredients     []struct {
			Text string `json:"text"`
		} `json:"ingredients"`
	} `json:"product"`
}

// FetchProduct resolves a barcode to product metadata. A barcode the source
// does not know yields ErrProductNotFound; transport and server failures
// yield ErrSourceUnavailable so callers never cache them.
func (c *OpenBeautyFactsClient) FetchProduct(ctx context.Context, barcode string) (schema.ProductMetadata, error) {
	endpoint := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return schema.ProductMetadata{}, fmt.Errorf("failed to build product request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return schema.ProductMetadata{}, fmt.Errorf("product source request failed: %w: %w", contract.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return schema.ProductMetadata{}, fmt.Errorf("barcode %s: %w", barcode, contract.ErrProductNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return schema.ProductMetadata{}, fmt.Errorf("product source returned status %d: %w", resp.StatusCode, contract.ErrSourceUnavailable)
	}

	var payload obfResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return schema.ProductMetadata{}, fmt.Errorf("failed to decode product payload: %w: %w", contract.ErrSourceUnavailable, err)
	}

	// The API answers 200 with status=0 for unknown barcodes.
	if payload.Status != 1 {
		return schema.ProductMetadata{}, fmt.Errorf("barcode %s: %w", barcode, contract.ErrProductNotFound)
	}

	meta := schema.ProductMetadata{
		Barcode:     barcode,
		Name:        payload.Product.ProductName,
		Brand:       payload.Product.Brands,
		Ingredients: extractIngredients(payload),
	}
	return meta, nil
}

// extractIngredients prefers the structured ingredient list and falls back to
// splitting the free-text field.
func extractIngredients(payload obfResponse) []string {
	var names []string
	seen := make(map[string]struct{})

	appendName := func(raw string) {
		name := schema.NormalizeIngredient(raw)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, ing := range payload.Product.Ingredients {
		appendName(ing.Text)
	}
	if len(names) > 0 {
		return names
	}

	for _, part := range strings.Split(payload.Product.IngredientsText, ",") {
		appendName(part)
	}
	return names
}
