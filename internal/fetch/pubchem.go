package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
)

// DefaultPubChemBaseURL is the production PubChem PUG endpoint.
const DefaultPubChemBaseURL = "https://pubchem.ncbi.nlm.nih.gov"

// hazardCodePattern matches GHS hazard statement codes like H315.
var hazardCodePattern = regexp.MustCompile(`\bH[0-9]{3}\b`)

// PubChemClient resolves ingredient names to GHS hazard codes via the PubChem
// PUG REST and PUG View APIs. When the primary database has no entry for a
// name, an optional estimator supplies hazard codes tagged with estimated
// provenance.
type PubChemClient struct {
	baseURL   string
	client    *http.Client
	estimator contract.HazardEstimator // may be nil
}

var _ contract.IngredientFetcher = &PubChemClient{} // Compile-time check

// NewPubChemClient returns a client against baseURL. An empty baseURL selects
// the production endpoint; a nil estimator disables the fallback.
func NewPubChemClient(baseURL string, timeout time.Duration, estimator contract.HazardEstimator) *PubChemClient {
	if baseURL == "" {
		baseURL = DefaultPubChemBaseURL
	}
	if timeout <= 0 {
		timeout = contract.DefaultFetchTimeout
	}
	return &PubChemClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		estimator: estimator,
	}
}

// FetchIngredient resolves an ingredient name to its hazard codes. Names the
// primary database does not know fall back to the estimator when one is
// configured; results from that path carry estimated provenance. Transport
// and server failures yield ErrSourceUnavailable so callers never cache them.
func (c *PubChemClient) FetchIngredient(ctx context.Context, name string) (schema.IngredientHazardData, error) {
	normalized := schema.NormalizeIngredient(name)
	if normalized == "" {
		return schema.IngredientHazardData{}, fmt.Errorf("empty ingredient name: %w", contract.ErrIngredientNotFound)
	}

	cid, err := c.lookupCID(ctx, normalized)
	if err != nil {
		if errors.Is(err, contract.ErrIngredientNotFound) {
			return c.estimate(ctx, normalized, err)
		}
		return schema.IngredientHazardData{}, err
	}

	codes, err := c.lookupHazardCodes(ctx, cid)
	if err != nil {
		if errors.Is(err, contract.ErrIngredientNotFound) {
			return c.estimate(ctx, normalized, err)
		}
		return schema.IngredientHazardData{}, err
	}

	return schema.IngredientHazardData{
		Ingredient:  normalized,
		HazardCodes: codes,
		Provenance:  schema.AuthoritativeProvenance,
	}, nil
}

// estimate runs the fallback estimator for a name the primary database does
// not know. Without an estimator the original not-found error stands.
func (c *PubChemClient) estimate(ctx context.Context, name string, lookupErr error) (schema.IngredientHazardData, error) {
	if c.estimator == nil {
		return schema.IngredientHazardData{}, lookupErr
	}

	codes, err := c.estimator.EstimateHazards(ctx, name)
	if err != nil {
		return schema.IngredientHazardData{}, fmt.Errorf("hazard estimation for %q failed: %w", name, err)
	}

	return schema.IngredientHazardData{
		Ingredient:  name,
		HazardCodes: codes,
		Provenance:  schema.EstimatedProvenance,
	}, nil
}

// cidResponse mirrors the PUG REST name-to-CID payload.
type cidResponse struct {
	IdentifierList struct {
		CID []int64 `json:"CID"`
	} `json:"IdentifierList"`
}

// lookupCID resolves an ingredient name to its first PubChem compound ID.
func (c *PubChemClient) lookupCID(ctx context.Context, name string) (int64, error) {
	endpoint := fmt.Sprintf("%s/rest/pug/compound/name/%s/cids/JSON", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build compound request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("compound source request failed: %w: %w", contract.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("ingredient %s: %w", name, contract.ErrIngredientNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("compound source returned status %d: %w", resp.StatusCode, contract.ErrSourceUnavailable)
	}

	var payload cidResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode compound payload: %w: %w", contract.ErrSourceUnavailable, err)
	}
	if len(payload.IdentifierList.CID) == 0 {
		return 0, fmt.Errorf("ingredient %s: %w", name, contract.ErrIngredientNotFound)
	}
	return payload.IdentifierList.CID[0], nil
}

// lookupHazardCodes extracts GHS hazard statement codes from the PUG View
// safety section for a compound. The section is deeply nested free-form
// JSON, so the codes are pattern-matched out of the raw body rather than
// modeled structurally.
func (c *PubChemClient) lookupHazardCodes(ctx context.Context, cid int64) ([]string, error) {
	endpoint := fmt.Sprintf("%s/rest/pug_view/data/compound/%d/JSON?heading=GHS+Classification", c.baseURL, cid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build hazard request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hazard source request failed: %w: %w", contract.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// No GHS section means the compound exists but has no recorded hazards.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hazard source returned status %d: %w", resp.StatusCode, contract.ErrSourceUnavailable)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode hazard payload: %w: %w", contract.ErrSourceUnavailable, err)
	}

	matches := hazardCodePattern.FindAllString(string(body), -1)
	return dedupeCodes(matches), nil
}

// dedupeCodes removes duplicate hazard codes while preserving first-seen order.
func dedupeCodes(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(codes))
	var out []string
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
