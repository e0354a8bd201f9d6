package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
)

// ChatEstimator estimates GHS hazard codes for ingredients missing from the
// primary chemical database by asking an OpenAI-compatible chat completion
// endpoint. Estimates are best-effort; callers tag them with estimated
// provenance so downstream consumers can tell them apart.
type ChatEstimator struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

var _ contract.HazardEstimator = &ChatEstimator{} // Compile-time check

// NewChatEstimator returns an estimator against an OpenAI-compatible
// /chat/completions endpoint. Returns nil when endpoint is empty, which
// disables estimation entirely.
func NewChatEstimator(endpoint, apiKey, model string, timeout time.Duration) *ChatEstimator {
	if endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = contract.DefaultFetchTimeout
	}
	return &ChatEstimator{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// EstimateHazards asks the model for likely GHS hazard statement codes for a
// cosmetic ingredient and pattern-matches them out of the free-text reply.
// An empty result means the model considers the ingredient benign.
func (e *ChatEstimator) EstimateHazards(ctx context.Context, name string) ([]string, error) {
	prompt := fmt.Sprintf(
		"List the GHS hazard statement codes (like H315 or H319) that apply to the cosmetic ingredient %q. "+
			"Answer with the codes only, comma separated, or NONE if no hazards apply.", name)

	body, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a cosmetic chemistry safety assistant."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode estimation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build estimation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("estimation request failed: %w: %w", contract.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("estimation endpoint returned status %d: %w", resp.StatusCode, contract.ErrSourceUnavailable)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode estimation payload: %w: %w", contract.ErrSourceUnavailable, err)
	}
	if len(payload.Choices) == 0 {
		return nil, nil
	}

	return dedupeCodes(hazardCodePattern.FindAllString(payload.Choices[0].Message.Content, -1)), nil
}
