package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = "You are a data-cleaning assistant.\n" +
	"Return ONLY a valid JSON object with keys: " +
	"device_type, device_type_confidence, owner, owner_email, owner_team, reasoning_short.\n" +
	"No markdown, no explanation outside JSON. If unsure use null.\n"

// Client talks to an Ollama-compatible completion endpoint.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
	available   bool
}

// NewClient builds the client and probes the endpoint once. A failed probe
// degrades the whole run to the unavailable path; it is never retried.
func NewClient(baseURL, model string, temperature float64, timeout time.Duration) *Client {
	if temperature > 0.2 {
		temperature = 0.2
	}
	c := &Client{
		baseURL:     sanitizeBaseURL(baseURL),
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
	c.available = c.probe()
	return c
}

// Available reports the result of the construction-time probe.
func (c *Client) Available() bool { return c.available }

func (c *Client) probe() bool {
	if c.baseURL == "" || c.model == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 300
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete sends one resolution request and returns the raw model text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature":    c.temperature,
			"top_p":          0.9,
			"repeat_penalty": 1.1,
			"num_predict":    280,
		},
	})
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("resolver endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(excerpt)))
	}
	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode resolver response: %w", err)
	}
	return strings.TrimSpace(payload.Response), nil
}

// buildPrompt renders the structured task description the capability sees.
func buildPrompt(req Request) (string, error) {
	payload := map[string]any{
		"task": "Resolve ambiguous inventory fields for IPAM/DNS normalization",
		"constraints": map[string]any{
			"temperature":          0.2,
			"output_format":        "STRICT_JSON_OBJECT_ONLY",
			"allowed_device_types": req.Constraints.AllowedDeviceTypes,
		},
		"context": req.Context,
		"output_schema": map[string]string{
			"device_type":            "string|null",
			"device_type_confidence": "number|null (0..1)",
			"owner":                  "string|null",
			"owner_email":            "string|null",
			"owner_team":             "string|null",
			"reasoning_short":        "string",
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return "<|system|>\n" + systemPrompt + "<|user|>\n" + string(encoded) + "\n<|assistant|>\n", nil
}

func sanitizeBaseURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	return strings.TrimRight(trimmed, "/")
}
