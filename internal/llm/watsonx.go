package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
)

const generationPath = "/ml/v1-beta/generation/text?version=2024-05-29"

// maxGenerateRetries bounds transient-failure retries on a generation call.
// User-visible latency already includes one network round trip per question,
// so a single retry is the ceiling.
const maxGenerateRetries = 1

// WatsonxClient calls the watsonx text-generation API.
// It implements the Generator interface.
type WatsonxClient struct {
	BaseURL   string
	Model     string
	ProjectID string
	tokens    oauth2.TokenSource
	client    *http.Client
}

// NewWatsonxClient creates a generation client. tokens should be a caching
// token source (see NewIAMTokenSource).
func NewWatsonxClient(baseURL, model, projectID string, tokens oauth2.TokenSource) *WatsonxClient {
	return &WatsonxClient{
		BaseURL:   baseURL,
		Model:     model,
		ProjectID: projectID,
		tokens:    tokens,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// generationRequest is the watsonx text-generation payload.
type generationRequest struct {
	ModelID    string               `json:"model_id"`
	Input      string               `json:"input"`
	Parameters generationParameters `json:"parameters"`
	ProjectID  string               `json:"project_id"`
}

type generationParameters struct {
	Temperature  float64 `json:"temperature"`
	MaxNewTokens int     `json:"max_new_tokens"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// Generate produces text for the given prompt. Transient failures (network
// errors, 5xx) are retried once with exponential backoff; client errors are
// returned immediately.
func (c *WatsonxClient) Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	var generated string

	operation := func() error {
		text, err := c.generateOnce(ctx, prompt, temperature, maxTokens)
		if err != nil {
			return err
		}
		generated = text
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxGenerateRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return generated, nil
}

func (c *WatsonxClient) generateOnce(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain access token: %w", err)
	}

	payload := generationRequest{
		ModelID: c.Model,
		Input:   prompt,
		Parameters: generationParameters{
			Temperature:  temperature,
			MaxNewTokens: maxTokens,
		},
		ProjectID: c.ProjectID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+generationPath, bytes.NewBuffer(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var genResp generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(genResp.Results) == 0 {
		return "", backoff.Permanent(fmt.Errorf("no results returned"))
	}

	return genResp.Results[0].GeneratedText, nil
}
